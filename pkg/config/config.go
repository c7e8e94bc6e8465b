package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Checkout     CheckoutConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SARISARI_APP_ENV" required:"true"`
	Port         string `envconfig:"SARISARI_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SARISARI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SARISARI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SARISARI_DB_DSN"`
	Driver string `envconfig:"SARISARI_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SARISARI_DB_HOST"`
	LegacyPort     int    `envconfig:"SARISARI_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SARISARI_DB_USER"`
	LegacyPassword string `envconfig:"SARISARI_DB_PASSWORD"`
	LegacyName     string `envconfig:"SARISARI_DB_NAME"`
	LegacySSLMode  string `envconfig:"SARISARI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SARISARI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SARISARI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SARISARI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SARISARI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SARISARI_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SARISARI_REDIS_ADDR"`
	Password     string        `envconfig:"SARISARI_REDIS_PASSWORD"`
	DB           int           `envconfig:"SARISARI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SARISARI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SARISARI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SARISARI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SARISARI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SARISARI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SARISARI_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SARISARI_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SARISARI_JWT_EXPIRATION_MINUTES" required:"true"`
}

type CheckoutConfig struct {
	// TaxRate is the VAT fraction applied at quote time (0.12 = 12%).
	TaxRate        string        `envconfig:"SARISARI_CHECKOUT_TAX_RATE" default:"0.12"`
	IdempotencyTTL time.Duration `envconfig:"SARISARI_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type RateLimitConfig struct {
	// CartWriteLimit caps cart mutations per actor per window; 0 disables.
	CartWriteLimit  int           `envconfig:"SARISARI_RATE_LIMIT_CART_WRITES" default:"60"`
	CartWriteWindow time.Duration `envconfig:"SARISARI_RATE_LIMIT_CART_WINDOW" default:"1m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SARISARI_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SARISARI_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

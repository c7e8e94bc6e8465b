package config

// EnvPrefix is passed to envconfig; individual tags carry the full name.
const EnvPrefix = "SARISARI"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "SARISARI_APP_ENV"
	EnvPort       = "SARISARI_APP_PORT"
	EnvDBDSN      = "SARISARI_DB_DSN"
	EnvDBHost     = "SARISARI_DB_HOST"
	EnvDBUser     = "SARISARI_DB_USER"
	EnvDBName     = "SARISARI_DB_NAME"
	EnvRedisURL   = "SARISARI_REDIS_URL"
	EnvJWTSecret  = "SARISARI_JWT_SECRET"
	EnvJWTIssuer  = "SARISARI_JWT_ISSUER"
	EnvJWTExpMins = "SARISARI_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/api/routes"
	"github.com/sarisaristore/sarisari-backend/internal/cart"
	"github.com/sarisaristore/sarisari-backend/internal/checkout"
	"github.com/sarisaristore/sarisari-backend/internal/inventory"
	product "github.com/sarisaristore/sarisari-backend/internal/products"
	"github.com/sarisaristore/sarisari-backend/internal/stock"
	"github.com/sarisaristore/sarisari-backend/pkg/config"
	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
	"github.com/sarisaristore/sarisari-backend/pkg/metrics"
	"github.com/sarisaristore/sarisari-backend/pkg/migrate"
	"github.com/sarisaristore/sarisari-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	taxRate, err := decimal.NewFromString(cfg.Checkout.TaxRate)
	if err != nil {
		logg.Error(context.Background(), "invalid checkout tax rate", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	stockRepo := stock.NewRepository(conn)
	productRepo := product.NewRepository(conn)
	inventoryRepo := inventory.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)

	pricer, err := checkout.NewPricer(stockRepo, taxRate)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricer", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productRepo, dbClient, stockRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	stockService, err := stock.NewService(stockRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, productRepo, pricer)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartRepo, pricer)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
			Products:    productService,
			Stock:       stockService,
			Inventory:   inventoryService,
			Cart:        cartService,
			Checkout:    checkoutService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stopCh:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/maisonluxe/storefront-backend/api/routes"
	authsvc "github.com/maisonluxe/storefront-backend/internal/auth"
	cartsvc "github.com/maisonluxe/storefront-backend/internal/cart"
	"github.com/maisonluxe/storefront-backend/internal/catalog"
	"github.com/maisonluxe/storefront-backend/internal/users"
	"github.com/maisonluxe/storefront-backend/pkg/auth/session"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	"github.com/maisonluxe/storefront-backend/pkg/db"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
	"github.com/maisonluxe/storefront-backend/pkg/metrics"
	"github.com/maisonluxe/storefront-backend/pkg/migrate"
	"github.com/maisonluxe/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(logg, "database", err)

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(logg, "migrations", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(logg, "redis", err)

	defer func() {
		if err := multierr.Append(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing backing clients", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(logg, "session manager", err)

	userRepo := users.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	requireResource(logg, "catalog service", err)

	cartService, err := cartsvc.NewService(
		cartsvc.NewRepository(dbClient.DB()),
		catalog.NewRepository(dbClient.DB()),
		cfg.Pricing,
	)
	requireResource(logg, "cart service", err)

	authService, err := authsvc.NewService(userRepo, sessionManager, logg, cfg)
	requireResource(logg, "auth service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Redis:          redisClient,
		Sessions:       sessionManager,
		HTTPMetrics:    metrics.NewHTTPMetrics(registry),
		Gatherer:       registry,
		DBPinger:       dbClient,
		RedisPinger:    redisClient,
		AuthService:    authService,
		CartService:    cartService,
		CatalogService: catalogService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received, draining")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "graceful shutdown failed", err)
		}
	}
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "resource not working: "+resource, err)
	os.Exit(1)
}

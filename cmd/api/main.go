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
	"go.uber.org/multierr"

	"github.com/mstanchev/pricewatch-backend/api/routes"
	"github.com/mstanchev/pricewatch-backend/internal/auth"
	"github.com/mstanchev/pricewatch-backend/internal/dashboard"
	"github.com/mstanchev/pricewatch-backend/internal/images"
	"github.com/mstanchev/pricewatch-backend/internal/moderation"
	"github.com/mstanchev/pricewatch-backend/internal/preferences"
	"github.com/mstanchev/pricewatch-backend/internal/prices"
	"github.com/mstanchev/pricewatch-backend/internal/products"
	"github.com/mstanchev/pricewatch-backend/internal/regions"
	"github.com/mstanchev/pricewatch-backend/internal/stores"
	"github.com/mstanchev/pricewatch-backend/internal/users"
	"github.com/mstanchev/pricewatch-backend/pkg/auth/session"
	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/db"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
	"github.com/mstanchev/pricewatch-backend/pkg/migrate"
	"github.com/mstanchev/pricewatch-backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	storeRepo := stores.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	priceRepo := prices.NewRepository(gormDB)

	storeService, err := stores.NewService(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		Repo:     productRepo,
		Resolver: images.NewResolver(cfg.Images),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	priceService, err := prices.NewService(priceRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create price service", err)
		os.Exit(1)
	}

	regionService, err := regions.NewService(regions.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create region service", err)
		os.Exit(1)
	}

	preferenceService, err := preferences.NewService(preferences.NewRepository(gormDB), cfg.Preferences)
	if err != nil {
		logg.Error(context.Background(), "failed to create preference service", err)
		os.Exit(1)
	}

	moderationService, err := moderation.NewService(moderation.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create moderation service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(storeRepo, productRepo, priceRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	router := routes.New(routes.Params{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Sessions: sessionManager,
		Registry: prometheus.NewRegistry(),

		AuthService:       authService,
		StoreService:      storeService,
		ProductService:    productService,
		PriceService:      priceService,
		RegionService:     regionService,
		PreferenceService: preferenceService,
		ModerationService: moderationService,
		DashboardService:  dashboardService,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	err = multierr.Append(err, redisClient.Close())
	err = multierr.Append(err, dbClient.Close())
	if err != nil {
		logg.Error(logCtx, "shutdown finished with errors", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "shutdown complete")
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/radityaprast/pasarlokal-backend/api/routes"
	"github.com/radityaprast/pasarlokal-backend/internal/auth"
	"github.com/radityaprast/pasarlokal-backend/internal/cart"
	"github.com/radityaprast/pasarlokal-backend/internal/catalog"
	"github.com/radityaprast/pasarlokal-backend/internal/categories"
	checkoutsvc "github.com/radityaprast/pasarlokal-backend/internal/checkout"
	"github.com/radityaprast/pasarlokal-backend/internal/feedback"
	"github.com/radityaprast/pasarlokal-backend/internal/guestbook"
	"github.com/radityaprast/pasarlokal-backend/internal/orders"
	"github.com/radityaprast/pasarlokal-backend/internal/products"
	"github.com/radityaprast/pasarlokal-backend/internal/shops"
	"github.com/radityaprast/pasarlokal-backend/internal/users"
	"github.com/radityaprast/pasarlokal-backend/pkg/config"
	"github.com/radityaprast/pasarlokal-backend/pkg/db"
	"github.com/radityaprast/pasarlokal-backend/pkg/logger"
	"github.com/radityaprast/pasarlokal-backend/pkg/metrics"
	"github.com/radityaprast/pasarlokal-backend/pkg/migrate"
	"github.com/radityaprast/pasarlokal-backend/pkg/outbox"
	"github.com/radityaprast/pasarlokal-backend/pkg/redis"
)

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

	if err := auth.EnsureAdminSeed(context.Background(), dbClient, cfg.Password, cfg.SeedAdmin, logg); err != nil {
		logg.Error(context.Background(), "failed to seed admin account", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	shopsService, err := shops.NewService(dbClient, outboxService)
	if err != nil {
		logg.Error(context.Background(), "failed to create shops service", err)
		os.Exit(1)
	}
	productsService, err := products.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}
	categoriesService, err := categories.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(users.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	feedbackService, err := feedback.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}
	guestbookService, err := guestbook.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create guestbook service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

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
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, promRegistry, httpMetrics,
			authService, catalogService, cartService, checkoutService,
			ordersService, shopsService, productsService, categoriesService,
			usersService, feedbackService, guestbookService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

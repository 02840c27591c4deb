package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/AdejohOS/feather-mart-sub001/api/routes"
	"github.com/AdejohOS/feather-mart-sub001/internal/cart"
	"github.com/AdejohOS/feather-mart-sub001/internal/products"
	"github.com/AdejohOS/feather-mart-sub001/internal/wishlist"
	"github.com/AdejohOS/feather-mart-sub001/pkg/config"
	"github.com/AdejohOS/feather-mart-sub001/pkg/db"
	"github.com/AdejohOS/feather-mart-sub001/pkg/logger"
	"github.com/AdejohOS/feather-mart-sub001/pkg/redis"
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

	productRepo := products.NewRepository(dbClient.DB())

	cartRepo := cart.NewRepository(dbClient.DB())
	cartGuestStore := cart.NewGuestStore(redisClient, cfg.Guest.StateTTL, logg)
	cartService, err := cart.NewService(cart.ServiceParams{
		LineRepo:    cartRepo,
		GuestStore:  cartGuestStore,
		ProductRepo: productRepo,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	cartReconciler, err := cart.NewReconciler(cartRepo, cartGuestStore, productRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart reconciler", err)
		os.Exit(1)
	}

	wishlistRepo := wishlist.NewRepository(dbClient.DB())
	wishlistGuestStore := wishlist.NewGuestStore(redisClient, cfg.Guest.StateTTL, logg)
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		EntryRepo:   wishlistRepo,
		GuestStore:  wishlistGuestStore,
		ProductRepo: productRepo,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	wishlistReconciler, err := wishlist.NewReconciler(wishlistRepo, wishlistGuestStore, productRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist reconciler", err)
		os.Exit(1)
	}

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
			cfg,
			logg,
			dbClient,
			redisClient,
			cartService,
			cartReconciler,
			wishlistService,
			wishlistReconciler,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

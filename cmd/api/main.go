package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/lmarquez/storefront-backend/api/routes"
	"github.com/lmarquez/storefront-backend/internal/cart"
	"github.com/lmarquez/storefront-backend/internal/catalog"
	"github.com/lmarquez/storefront-backend/internal/persist"
	"github.com/lmarquez/storefront-backend/internal/wishlist"
	"github.com/lmarquez/storefront-backend/pkg/config"
	"github.com/lmarquez/storefront-backend/pkg/logger"
	"github.com/lmarquez/storefront-backend/pkg/metrics"
	"github.com/lmarquez/storefront-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeAll(redisClient); err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	catalogClient, err := catalog.NewClient(cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	cartAdapter, err := persist.NewAdapter[cart.LineItem](redisClient, cfg.Session.TTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart persistence adapter", err)
		os.Exit(1)
	}
	cartStore, err := cart.NewStore(cart.StoreParams{
		Adapter:     cartAdapter,
		KeyFor:      redisClient.CartKey,
		MaxQuantity: cfg.Cart.MaxQuantity,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: catalogClient,
		TaxRate:  cfg.Cart.TaxRate,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistAdapter, err := persist.NewAdapter[catalog.Product](redisClient, cfg.Session.TTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist persistence adapter", err)
		os.Exit(1)
	}
	wishlistStore, err := wishlist.NewStore(wishlist.StoreParams{
		Adapter: wishlistAdapter,
		KeyFor:  redisClient.WishlistKey,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist store", err)
		os.Exit(1)
	}
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Store:    wishlistStore,
		Products: catalogClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

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
			redisClient,
			catalogClient,
			cartService,
			wishlistService,
			httpMetrics,
			metricsHandler,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func closeAll(closers ...interface{ Close() error }) error {
	var err error
	for _, c := range closers {
		if c == nil {
			continue
		}
		err = multierr.Append(err, c.Close())
	}
	return err
}

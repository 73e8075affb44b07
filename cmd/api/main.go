package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/urbanthreads/storefront-backend/api/controllers"
	"github.com/urbanthreads/storefront-backend/api/routes"
	"github.com/urbanthreads/storefront-backend/internal/cron"
	"github.com/urbanthreads/storefront-backend/internal/customorders"
	"github.com/urbanthreads/storefront-backend/internal/newsletter"
	"github.com/urbanthreads/storefront-backend/internal/orders"
	"github.com/urbanthreads/storefront-backend/internal/payments"
	"github.com/urbanthreads/storefront-backend/internal/products"
	"github.com/urbanthreads/storefront-backend/pkg/config"
	"github.com/urbanthreads/storefront-backend/pkg/db"
	"github.com/urbanthreads/storefront-backend/pkg/env"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
	"github.com/urbanthreads/storefront-backend/pkg/metrics"
	"github.com/urbanthreads/storefront-backend/pkg/migrate"
	"github.com/urbanthreads/storefront-backend/pkg/redis"
	"github.com/urbanthreads/storefront-backend/pkg/stripe"
)

const cronLockKeyPrefix = "ut:api-cron:lock:"

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

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.SeedProducts {
		seeded, err := productService.SeedIfEmpty(context.Background())
		if err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
		if seeded > 0 {
			ctx := logg.WithField(context.Background(), "count", seeded)
			logg.Info(ctx, "seeded product catalog")
		}
	}

	orderRepo := orders.NewRepository(dbClient.DB())
	orderService, err := orders.NewService(orderRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	paymentRepo := payments.NewRepository(dbClient.DB())
	paymentService, err := payments.NewService(paymentRepo, orderRepo, stripe.NewCheckoutSessionClient(stripeClient), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	customOrderService, err := customorders.NewService(customorders.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create custom order service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	staleJob, err := cron.NewStaleTransactionsJob(paymentRepo, 24*time.Hour, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stale transactions job", err)
		os.Exit(1)
	}
	cronLock, err := cron.NewRedisLock(redisClient, cronLockKeyPrefix+cfg.App.Env, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}
	cronService, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(staleJob),
		Lock:     cronLock,
		Metrics:  jobMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	handler := routes.NewAPIRouter(routes.APIDeps{
		Config: cfg,
		Logger: logg,
		Readiness: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		Idempotency:  redisClient,
		HTTPMetrics:  httpMetrics,
		Registry:     registry,
		StripeClient: stripeClient,
		Products:     productService,
		Orders:       orderService,
		Payments:     paymentService,
		Newsletter:   newsletterService,
		CustomOrders: customOrderService,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		return cronService.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

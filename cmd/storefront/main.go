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

	"github.com/urbanthreads/storefront-backend/api/routes"
	"github.com/urbanthreads/storefront-backend/internal/cart"
	"github.com/urbanthreads/storefront-backend/internal/catalog"
	"github.com/urbanthreads/storefront-backend/internal/checkout"
	"github.com/urbanthreads/storefront-backend/internal/cron"
	"github.com/urbanthreads/storefront-backend/internal/payment"
	"github.com/urbanthreads/storefront-backend/pkg/config"
	"github.com/urbanthreads/storefront-backend/pkg/env"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
	"github.com/urbanthreads/storefront-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	backendURL := cfg.Storefront.BackendBaseURL
	if backendURL == "" {
		logg.Error(context.Background(), "missing backend base url", errors.New("URBANTHREADS_BACKEND_BASE_URL required"))
		os.Exit(1)
	}
	upstreamClient := &http.Client{Timeout: cfg.Storefront.UpstreamTimeout}

	orderClient, err := checkout.NewOrderClient(backendURL, checkout.WithHTTPClient(upstreamClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create order client", err)
		os.Exit(1)
	}
	sessionClient, err := checkout.NewSessionClient(backendURL, checkout.WithHTTPClient(upstreamClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create session client", err)
		os.Exit(1)
	}
	newsletterClient, err := checkout.NewNewsletterClient(backendURL, checkout.WithHTTPClient(upstreamClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter client", err)
		os.Exit(1)
	}

	initiator, err := checkout.NewInitiator(orderClient, sessionClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout initiator", err)
		os.Exit(1)
	}

	statusClient, err := payment.NewClient(backendURL, payment.WithHTTPClient(upstreamClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create payment status client", err)
		os.Exit(1)
	}
	poller, err := payment.NewPoller(statusClient, logg,
		payment.WithMaxAttempts(cfg.Storefront.PollAttempts),
		payment.WithInterval(cfg.Storefront.PollInterval),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment poller", err)
		os.Exit(1)
	}

	catalogURL := cfg.Catalog.UpstreamBaseURL
	if catalogURL == "" {
		catalogURL = backendURL
	}
	catalogClient, err := catalog.NewUpstreamClient(catalogURL, catalog.WithHTTPClient(upstreamClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	carts := cart.NewManager()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	pruneJob, err := cron.NewCartPruneJob(carts, cfg.Storefront.CartIdleTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart prune job", err)
		os.Exit(1)
	}
	// Carts live in process memory, so the pruner needs no distributed lock.
	cronService, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(pruneJob),
		Lock:     cron.NoopLock{},
		Metrics:  jobMetrics,
		Interval: cfg.Storefront.CartPruneEvery,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	handler := routes.NewStorefrontRouter(routes.StorefrontDeps{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
		Carts:       carts,
		Checkout:    initiator,
		Poller:      poller,
		Catalog:     catalogService,
		Newsletter:  newsletterClient,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": backendURL,
	})
	logg.Info(ctx, "starting storefront server")

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
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "storefront server stopped")
}

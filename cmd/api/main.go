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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ridefinderz-filters/api/controllers"
	"github.com/angelmondragon/ridefinderz-filters/api/routes"
	"github.com/angelmondragon/ridefinderz-filters/internal/cron"
	"github.com/angelmondragon/ridefinderz-filters/internal/filters"
	"github.com/angelmondragon/ridefinderz-filters/internal/sessions"
	"github.com/angelmondragon/ridefinderz-filters/pkg/config"
	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/angelmondragon/ridefinderz-filters/pkg/instance"
	"github.com/angelmondragon/ridefinderz-filters/pkg/logger"
	"github.com/angelmondragon/ridefinderz-filters/pkg/metrics"
	"github.com/angelmondragon/ridefinderz-filters/pkg/pubsub"
	"github.com/angelmondragon/ridefinderz-filters/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

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
		Format:      cfg.App.LogFormat,
		Instance:    instance.GetID(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	redisSink, err := sessions.NewRedisSink(redisClient, cfg.Filters.SessionTTL)
	if err != nil {
		logg.Error(ctx, "failed to create redis sink", err)
		os.Exit(1)
	}
	sinks := []sessions.Sink{redisSink}
	readiness := []controllers.Dependency{{Name: "redis", Ping: redisClient.Ping}}

	if cfg.PubSub.Enabled {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		publisher := pubsubClient.FilterEventsPublisher()
		defer publisher.Stop()

		pubsubSink, err := sessions.NewPubSubSink(publisher)
		if err != nil {
			logg.Error(ctx, "failed to create pubsub sink", err)
			os.Exit(1)
		}
		sinks = append(sinks, pubsubSink)
		readiness = append(readiness, controllers.Dependency{Name: "pubsub", Ping: pubsubClient.Ping})
	}

	limits := filters.Limits{MaxPrice: cfg.Filters.MaxPrice, Gap: cfg.Filters.PriceGap}
	currency, err := enums.ParseCurrency(cfg.Filters.Currency)
	if err != nil {
		logg.Error(ctx, "invalid currency", err)
		os.Exit(1)
	}

	sessionService, err := sessions.NewService(sessions.ServiceParams{
		Logger:   logg,
		Limits:   limits,
		Currency: currency,
		TTL:      cfg.Filters.SessionTTL,
		Sinks:    sinks,
		Metrics:  metrics.NewFilterMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(ctx, "failed to create filter session service", err)
		os.Exit(1)
	}

	sweepJob, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{Logger: logg, Sweeper: sessionService})
	if err != nil {
		logg.Error(ctx, "failed to create session sweep job", err)
		os.Exit(1)
	}
	jobs, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(sweepJob),
		Lock:     cron.NewLocalLock(),
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Filters.SweepInterval,
	})
	if err != nil {
		logg.Error(ctx, "failed to create job loop", err)
		os.Exit(1)
	}
	go func() {
		if err := jobs.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "job loop stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
		Handler: routes.NewRouter(cfg, logg, limits, sessionService, redisClient,
			promhttp.Handler(), readiness...),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "api server shutdown failed", err)
	}
	logg.Info(ctx, "api server shutting down gracefully")
}

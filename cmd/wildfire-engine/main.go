package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wildfirestack/wildfire-engine/internal/alerts"
	"github.com/wildfirestack/wildfire-engine/internal/api"
	"github.com/wildfirestack/wildfire-engine/internal/archive"
	"github.com/wildfirestack/wildfire-engine/internal/cache"
	"github.com/wildfirestack/wildfire-engine/internal/config"
	"github.com/wildfirestack/wildfire-engine/internal/metrics"
	"github.com/wildfirestack/wildfire-engine/internal/repo"
	"github.com/wildfirestack/wildfire-engine/internal/sched"
	"github.com/wildfirestack/wildfire-engine/internal/services"
	"github.com/wildfirestack/wildfire-engine/internal/state"
	"github.com/wildfirestack/wildfire-engine/internal/telemetry"
	"github.com/wildfirestack/wildfire-engine/internal/utils"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting wildfire-engine", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	var cacheProvider cache.Provider = cache.NewMemoryProvider()
	if cfg.Cache.Enabled && cfg.Cache.Addr != "" {
		provider, err := cache.NewValkeyProvider(cache.ValkeyConfig{
			Addr:         cfg.Cache.Addr,
			Username:     cfg.Cache.Username,
			Password:     cfg.Cache.Password,
			DB:           cfg.Cache.DB,
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
			MaxRetries:   cfg.Cache.MaxRetries,
			TLS:          cfg.Cache.TLS,
		})
		if err != nil {
			logger.Warn("valkey cache unavailable, using in-memory cache", slog.Any("error", err))
		} else {
			cacheProvider = provider
		}
	}
	defer cacheProvider.Close()

	hotspotClient := repo.NewHotspotClient(
		cfg.Providers.Firms.BaseURL,
		cfg.Providers.Firms.MapKey,
		cfg.Providers.Firms.Source,
		cfg.Providers.Firms.Country,
		cfg.Providers.Firms.Timeout,
		cacheProvider,
		cfg.Providers.Firms.CacheTTL,
	)
	weatherClient := repo.NewWeatherClient(
		cfg.Providers.Weather.BaseURL,
		cfg.Providers.Weather.APIKey,
		cfg.Providers.Weather.CountryCode,
		cfg.Providers.Weather.Timeout,
	)

	riskState := state.New(time.Now())
	fetcher := telemetry.NewFetcher(logger, hotspotClient, weatherClient, riskState)

	dispatcher := alerts.NewDispatcher(logger,
		alerts.NewFast2SMSChannel(cfg.Alerts.SMS.Endpoint, cfg.Alerts.SMS.APIKey, cfg.Alerts.SMS.Timeout),
		alerts.NewGSMChannel(logger),
		alerts.NewTelegramChannel(cfg.Alerts.Telegram.BaseURL, cfg.Alerts.Telegram.BotToken, cfg.Alerts.Telegram.ChatID, cfg.Alerts.Telegram.Timeout),
	)

	var store *archive.Archive
	if cfg.Archive.DSN != "" {
		store, err = archive.New(cfg.Archive.DSN)
		if err != nil {
			logger.Warn("archive unavailable, continuing without it", slog.Any("error", err))
		} else {
			defer store.Close()
		}
	}

	var recorder services.Recorder
	if store != nil {
		recorder = store
	}
	assessment := services.NewAssessmentService(logger, fetcher, riskState, dispatcher, nil, recorder)

	server, err := api.NewServer(cfg.Server, logger, api.NewHandlers(logger, assessment, riskState))
	if err != nil {
		logger.Error("failed to create HTTP server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var scheduler *sched.Scheduler
	if cfg.Scheduler.Spec != "" {
		scheduler, err = sched.New(logger, fetcher, cfg.Region.Default, cfg.Scheduler.Spec)
		if err != nil {
			logger.Error("invalid refresh schedule", slog.String("spec", cfg.Scheduler.Spec), slog.Any("error", err))
			os.Exit(1)
		}
		scheduler.Start()
	}

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("HTTP server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("wildfire-engine stopped")
}

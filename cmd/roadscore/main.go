package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/roadscore/roadscore/internal/app"
	"github.com/roadscore/roadscore/internal/dashboard"
	dashboardhttp "github.com/roadscore/roadscore/internal/dashboard/http"
	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/observability"
	"github.com/roadscore/roadscore/internal/platform/cache"
	"github.com/roadscore/roadscore/internal/shared"
	"github.com/roadscore/roadscore/internal/telemetry"
	"github.com/roadscore/roadscore/internal/view"
	"github.com/roadscore/roadscore/jobs"
)

const sessionCookieName = "roadscore_session"

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store, err := telemetry.Load(cfg.DashboardFixtures)
	if err != nil {
		logger.Error("load dashboard fixtures", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("dashboard data loaded", slog.String("fingerprint", store.Fingerprint()))

	uiLoop := loop.New(loop.WithLogger(logger))
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := uiLoop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("dashboard loop", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	dashboardMetrics, err := observability.NewDashboardMetrics(metrics.Registerer(), uiLoop.Pending)
	if err != nil {
		logger.Error("register dashboard metrics", slog.Any("error", err))
		os.Exit(1)
	}

	factory := dashboard.NewFactory(uiLoop, store, cfg.DashboardSettings(), dashboard.WithObserver(dashboardMetrics))
	var registry *dashboard.Registry
	var registryErr error
	if err := uiLoop.Do(ctx, func() {
		registry, registryErr = dashboard.NewRegistry(uiLoop, factory, cfg.DashboardIdleTTL,
			dashboard.WithRegistryObserver(dashboardMetrics),
			dashboard.WithRegistryLogger(logger),
		)
	}); err != nil || registryErr != nil {
		logger.Error("init session registry", slog.Any("error", errors.Join(err, registryErr)))
		os.Exit(1)
	}

	chartCache := dashboard.NewChartCache(redisClient, cfg.DashboardChartCacheTTL)
	charts := dashboard.NewChartRenderer(store, chartCache)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, sessionCookieName, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	if _, err := jobClient.EnqueueChartsWarmup(ctx, false); err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		logger.Warn("enqueue charts warmup", slog.Any("error", err))
	}

	dashboardHandler := dashboardhttp.NewHandler(logger, uiLoop, registry, charts, store, templates, csrfManager)
	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
		Health: func(ctx context.Context) error {
			return cache.Ping(ctx, redisClient)
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	// The loop stopped with ctx, so no callback can race the teardown below.
	<-loopDone
	registry.Close()
	uiLoop.Close()
}

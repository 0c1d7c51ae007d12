package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/roadscore/roadscore/internal/dashboard"
	jobmetrics "github.com/roadscore/roadscore/internal/jobs"
)

const (
	chartsWarmupJobName = "dashboard_charts_warmup"
	chartsWarmupTimeout = 20 * time.Second
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ChartWarmer renders the dashboard charts through the cache.
type ChartWarmer interface {
	Warm(ctx context.Context) (dashboard.Charts, error)
}

// CacheBumper invalidates cached charts.
type CacheBumper interface {
	Bump(ctx context.Context) (int64, error)
}

// ChartsWarmupJob pre-renders dashboard charts so the first page view after a
// deploy or fixture change skips SVG rendering.
type ChartsWarmupJob struct {
	Charts  ChartWarmer
	Cache   CacheBumper
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewChartsWarmupJob wires dependencies for the warmup handler.
func NewChartsWarmupJob(charts ChartWarmer, cache CacheBumper, logger *slog.Logger, metrics *jobmetrics.Metrics) *ChartsWarmupJob {
	return &ChartsWarmupJob{Charts: charts, Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes chart warmup tasks.
func (j *ChartsWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Charts == nil {
		return errors.New("charts warmup: handler not configured")
	}
	var payload ChartsWarmupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	tracker := j.metrics().Track(chartsWarmupJobName)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.Bool("bump", payload.Bump))
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, chartsWarmupTimeout)
	defer cancel()

	if payload.Bump && j.Cache != nil {
		ver, err := j.Cache.Bump(ctx)
		if err != nil {
			logger.Error("bump chart cache", slog.Any("error", err))
			return err
		}
		logger = logger.With(slog.Int64("version", ver))
	}

	charts, err := j.Charts.Warm(ctx)
	if err != nil {
		logger.Error("warm charts", slog.Any("error", err))
		return err
	}
	if charts.Trend != "" {
		j.metrics().AddChartsWarmed("trend", 1)
	}
	if charts.Radar != "" {
		j.metrics().AddChartsWarmed("radar", 1)
	}
	logger.Info("completed charts warmup", slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ChartsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardChartsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardChartsWarmup))
}

func (j *ChartsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

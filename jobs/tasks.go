package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardChartsWarmup renders dashboard charts into the Redis cache.
	TaskDashboardChartsWarmup = "dashboard:charts_warmup"
)

// ChartsWarmupPayload controls a warmup run. Bump invalidates every cached
// chart before rendering.
type ChartsWarmupPayload struct {
	Bump bool `json:"bump"`
}

// NewChartsWarmupTask constructs an Asynq task for the chart warmup.
func NewChartsWarmupTask(bump bool) (*asynq.Task, error) {
	data, err := json.Marshal(ChartsWarmupPayload{Bump: bump})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardChartsWarmup, data), nil
}

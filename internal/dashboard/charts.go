package dashboard

import (
	"context"
	"html/template"

	"golang.org/x/sync/errgroup"

	"github.com/roadscore/roadscore/internal/dashboard/svg"
	"github.com/roadscore/roadscore/internal/dashboard/ui"
	"github.com/roadscore/roadscore/internal/telemetry"
)

const (
	chartWidth  = 480
	chartHeight = 256
)

// Charts holds the rendered chart markup of a dashboard page.
type Charts struct {
	Trend template.HTML
	Radar template.HTML
}

// ChartRenderer draws the dashboard charts through the chart cache.
type ChartRenderer struct {
	store *telemetry.Store
	cache *ChartCache
}

// NewChartRenderer wires the shared store with an optional cache.
func NewChartRenderer(store *telemetry.Store, cache *ChartCache) *ChartRenderer {
	return &ChartRenderer{store: store, cache: cache}
}

// Render draws the charts of a render tree.
func (r *ChartRenderer) Render(ctx context.Context, tree Tree) (Charts, error) {
	return r.render(ctx, tree.DataVersion, tree.TimeSeries, tree.Radar)
}

// Warm renders the store's charts into the cache without a mounted view.
func (r *ChartRenderer) Warm(ctx context.Context) (Charts, error) {
	return r.render(ctx, r.store.Fingerprint(), ui.ToTimeSeries(r.store.Monthly()), ui.ToRadarSeries(r.store.Skills()))
}

func (r *ChartRenderer) render(ctx context.Context, version string, series []ui.TimeSeriesPoint, radar []ui.RadarPoint) (Charts, error) {
	var charts Charts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		key, err := r.cache.BuildKey(ctx, "trend", version)
		if err != nil {
			return err
		}
		markup, err := r.cache.Fetch(ctx, key, func() (string, error) {
			html, err := TrendChart(series)
			return string(html), err
		})
		if err != nil {
			return err
		}
		charts.Trend = template.HTML(markup)
		return nil
	})

	g.Go(func() error {
		key, err := r.cache.BuildKey(ctx, "radar", version)
		if err != nil {
			return err
		}
		markup, err := r.cache.Fetch(ctx, key, func() (string, error) {
			html, err := RadarChart(radar)
			return string(html), err
		})
		if err != nil {
			return err
		}
		charts.Radar = template.HTML(markup)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Charts{}, err
	}
	return charts, nil
}

// TrendChart draws the monthly reputation and eco score lines.
func TrendChart(points []ui.TimeSeriesPoint) (template.HTML, error) {
	return svg.LineMulti(chartWidth, chartHeight, ui.Labels(points), []svg.Series{
		{Name: "reputation", Color: "#34d399", Values: ui.ReputationValues(points)},
		{Name: "ecoScore", Color: "#60a5fa", Values: ui.EcoValues(points)},
	}, svg.LineOpts{
		Title:       "Monthly Trends",
		Description: "Reputation and eco score by month",
		ShowDots:    true,
		MinValue:    0,
		MaxValue:    100,
	})
}

// RadarChart draws the skill radar.
func RadarChart(points []ui.RadarPoint) (template.HTML, error) {
	return svg.Radar(chartWidth, chartHeight, ui.RadarLabels(points), ui.RadarValues(points), svg.RadarOpts{
		Title:       "Risk Analysis",
		Description: "Driving skill scores by category",
		SeriesName:  "Skills",
		StrokeColor: "#8b5cf6",
		FillColor:   "#8b5cf6",
		FillOpacity: 0.5,
		MaxValue:    100,
	})
}

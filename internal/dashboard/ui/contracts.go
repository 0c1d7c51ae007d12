package ui

import (
	"github.com/roadscore/roadscore/internal/telemetry"
)

// TimeSeriesPoint is one period of the monthly trend chart.
type TimeSeriesPoint struct {
	Period          string `json:"period"`
	ReputationScore int    `json:"reputation"`
	EcoScore        int    `json:"eco_score"`
}

// RadarPoint is one spoke of the skill radar chart.
type RadarPoint struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// ToTimeSeries projects the plotted fields of each sample, keeping period order.
func ToTimeSeries(samples []telemetry.MetricSample) []TimeSeriesPoint {
	points := make([]TimeSeriesPoint, 0, len(samples))
	for _, sample := range samples {
		points = append(points, TimeSeriesPoint{
			Period:          sample.Period,
			ReputationScore: sample.ReputationScore,
			EcoScore:        sample.EcoScore,
		})
	}
	return points
}

// ToRadarSeries maps skill ratings to radar spokes in source order.
func ToRadarSeries(ratings []telemetry.SkillRating) []RadarPoint {
	points := make([]RadarPoint, 0, len(ratings))
	for _, rating := range ratings {
		points = append(points, RadarPoint{Category: rating.Category, Score: rating.Score})
	}
	return points
}

// Labels returns the x-axis labels of a time series.
func Labels(points []TimeSeriesPoint) []string {
	labels := make([]string, 0, len(points))
	for _, point := range points {
		labels = append(labels, point.Period)
	}
	return labels
}

// ReputationValues returns the reputation line of a time series.
func ReputationValues(points []TimeSeriesPoint) []float64 {
	values := make([]float64, 0, len(points))
	for _, point := range points {
		values = append(values, float64(point.ReputationScore))
	}
	return values
}

// EcoValues returns the eco-score line of a time series.
func EcoValues(points []TimeSeriesPoint) []float64 {
	values := make([]float64, 0, len(points))
	for _, point := range points {
		values = append(values, float64(point.EcoScore))
	}
	return values
}

// RadarLabels returns the spoke labels of a radar series.
func RadarLabels(points []RadarPoint) []string {
	labels := make([]string, 0, len(points))
	for _, point := range points {
		labels = append(labels, point.Category)
	}
	return labels
}

// RadarValues returns the spoke values of a radar series.
func RadarValues(points []RadarPoint) []float64 {
	values := make([]float64, 0, len(points))
	for _, point := range points {
		values = append(values, float64(point.Score))
	}
	return values
}

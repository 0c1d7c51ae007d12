package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadscore/roadscore/internal/telemetry"
)

func TestToTimeSeriesEmpty(t *testing.T) {
	points := ToTimeSeries(nil)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestToTimeSeriesDropsUnplottedFields(t *testing.T) {
	points := ToTimeSeries([]telemetry.MetricSample{
		{Period: "Jan", OverspeedingCount: 5, HarshBrakingCount: 3, ClaimsCount: 0, ReputationScore: 85, EcoScore: 78},
	})
	assert.Equal(t, []TimeSeriesPoint{{Period: "Jan", ReputationScore: 85, EcoScore: 78}}, points)
}

func TestToTimeSeriesPreservesOrder(t *testing.T) {
	points := ToTimeSeries(telemetry.DefaultStore().Monthly())
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr"}, Labels(points))
	assert.Equal(t, []float64{85, 88, 82, 90}, ReputationValues(points))
	assert.Equal(t, []float64{78, 82, 75, 88}, EcoValues(points))
}

func TestToRadarSeriesStable(t *testing.T) {
	skills := telemetry.DefaultStore().Skills()
	first := ToRadarSeries(skills)
	second := ToRadarSeries(skills)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Speed Control", "Braking", "Cornering", "Acceleration", "Night Driving", "Weather Handling"}, RadarLabels(first))
	assert.Equal(t, []float64{80, 85, 70, 75, 90, 85}, RadarValues(first))
}

func TestToRadarSeriesEmpty(t *testing.T) {
	points := ToRadarSeries([]telemetry.SkillRating{})
	assert.NotNil(t, points)
	assert.Empty(t, points)
	assert.Empty(t, RadarLabels(points))
}

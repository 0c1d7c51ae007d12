package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/roadscore/roadscore/internal/telemetry"
)

// WriteMonthlyCSV emits the monthly driving metrics in period order.
func WriteMonthlyCSV(w io.Writer, samples []telemetry.MetricSample) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Period", "Overspeeding", "Harsh Braking", "Claims", "Reputation Score", "Eco Score"}); err != nil {
		return err
	}
	for _, s := range samples {
		if err := writer.Write([]string{
			s.Period,
			strconv.Itoa(s.OverspeedingCount),
			strconv.Itoa(s.HarshBrakingCount),
			strconv.Itoa(s.ClaimsCount),
			strconv.Itoa(s.ReputationScore),
			strconv.Itoa(s.EcoScore),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSkillsCSV emits the skill ratings in radar order.
func WriteSkillsCSV(w io.Writer, skills []telemetry.SkillRating) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Category", "Score"}); err != nil {
		return err
	}
	for _, s := range skills {
		if err := writer.Write([]string{s.Category, strconv.Itoa(s.Score)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteIncidentsCSV emits the recent incident log of the company view.
func WriteIncidentsCSV(w io.Writer, incidents []telemetry.Incident) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"ID", "Driver", "Type", "Date", "Severity"}); err != nil {
		return err
	}
	for _, inc := range incidents {
		if err := writer.Write([]string{strconv.FormatInt(inc.ID, 10), inc.Driver, inc.Type, inc.Date, inc.Severity}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

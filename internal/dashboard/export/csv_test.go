package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/roadscore/roadscore/internal/telemetry"
)

func TestWriteMonthlyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMonthlyCSV(&buf, telemetry.DefaultStore().Monthly()); err != nil {
		t.Fatalf("write monthly csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus four months, got %d lines", len(lines))
	}
	if lines[1] != "Jan,5,3,0,85,78" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestWriteSkillsCSVKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSkillsCSV(&buf, telemetry.DefaultStore().Skills()); err != nil {
		t.Fatalf("write skills csv: %v", err)
	}
	output := buf.String()
	if strings.Index(output, "Speed Control") > strings.Index(output, "Weather Handling") {
		t.Fatalf("expected insertion order, got %s", output)
	}
}

func TestWriteIncidentsCSVQuotesFields(t *testing.T) {
	var buf bytes.Buffer
	err := WriteIncidentsCSV(&buf, []telemetry.Incident{
		{ID: 9, Driver: "Smith, John", Type: "Speeding", Date: "2025-02-15", Severity: "High"},
	})
	if err != nil {
		t.Fatalf("write incidents csv: %v", err)
	}
	if !strings.Contains(buf.String(), `9,"Smith, John",Speeding,2025-02-15,High`) {
		t.Fatalf("expected quoted driver, got %s", buf.String())
	}
}

func TestWriteEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMonthlyCSV(&buf, nil); err != nil {
		t.Fatalf("empty series must not fail: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}

package svg

import (
	"strings"
	"testing"
)

func TestLineMultiProducesSVG(t *testing.T) {
	html, err := LineMulti(480, 256, []string{"Jan", "Feb", "Mar"}, []Series{
		{Name: "reputation", Color: "#34d399", Values: []float64{85, 88, 82}},
		{Name: "ecoScore", Color: "#60a5fa", Values: []float64{78, 82, 75}},
	}, LineOpts{Title: "Monthly Trends", ShowDots: true, MinValue: 0, MaxValue: 100})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") || !strings.HasSuffix(output, "</svg>") {
		t.Fatalf("expected svg output, got %s", output)
	}
	for _, want := range []string{
		`role="img"`,
		`viewBox="0 0 480 256"`,
		`<title id="monthly-trends-line-title">Monthly Trends</title>`,
		"rgba(52,211,153,1.0)",
		"rgba(96,165,250,1.0)",
		"ecoScore",
		"Feb",
		">100<",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in line chart", want)
		}
	}
}

func TestLineMultiEscapesText(t *testing.T) {
	html, err := LineMulti(0, 0, []string{"<Q1>"}, []Series{
		{Name: "a&b", Values: []float64{3}},
	}, LineOpts{Title: "<x>"})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if strings.Contains(output, "<Q1>") || strings.Contains(output, "<x>") {
		t.Fatalf("unescaped text in %s", output)
	}
	if !strings.Contains(output, "&lt;Q1&gt;") || !strings.Contains(output, "a&amp;b") {
		t.Fatalf("expected escaped label and series name")
	}
}

func TestLineMultiLengthMismatch(t *testing.T) {
	_, err := LineMulti(0, 0, []string{"Jan", "Feb"}, []Series{{Name: "a", Values: []float64{1}}}, LineOpts{})
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestLineMultiEmptyState(t *testing.T) {
	html, err := LineMulti(0, 0, nil, nil, LineOpts{Title: "Monthly Trends"})
	if err != nil {
		t.Fatalf("empty series must not fail: %v", err)
	}
	if !strings.Contains(string(html), EmptyStateText) {
		t.Fatalf("expected empty state, got %s", html)
	}
}

func TestRadarProducesSVG(t *testing.T) {
	labels := []string{"Speed Control", "Braking", "Cornering"}
	html, err := Radar(320, 256, labels, []float64{80, 85, 70}, RadarOpts{Title: "Risk Analysis", SeriesName: "Skills"})
	if err != nil {
		t.Fatalf("radar renderer error: %v", err)
	}
	output := string(html)
	if strings.Count(output, "<polygon") != DefaultRings+1 {
		t.Fatalf("expected grid rings plus data polygon: %s", output)
	}
	for _, label := range labels {
		if !strings.Contains(output, label) {
			t.Fatalf("expected label %q", label)
		}
	}
}

func TestRadarIsDeterministic(t *testing.T) {
	labels := []string{"A", "B", "C", "D"}
	values := []float64{10, 20, 30, 40}
	first, err := Radar(0, 0, labels, values, RadarOpts{})
	if err != nil {
		t.Fatalf("radar error: %v", err)
	}
	second, _ := Radar(0, 0, labels, values, RadarOpts{})
	if first != second {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestRadarEmptyState(t *testing.T) {
	html, err := Radar(0, 0, nil, nil, RadarOpts{Title: "Risk Analysis"})
	if err != nil {
		t.Fatalf("empty radar must not fail: %v", err)
	}
	if !strings.Contains(string(html), "data-empty") {
		t.Fatalf("expected empty state marker")
	}
}

func TestRadarLengthMismatch(t *testing.T) {
	if _, err := Radar(0, 0, []string{"A"}, nil, RadarOpts{}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

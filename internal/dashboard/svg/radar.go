package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Radar renders a single-series radar chart. Spokes start at twelve o'clock
// and follow label order clockwise, so identical input always draws the same
// shape. Empty labels produce an empty-state chart.
func Radar(width, height int, labels []string, values []float64, opts RadarOpts) (template.HTML, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if len(labels) == 0 {
		return Empty(width, height, fallback(opts.Title, "Radar chart")), nil
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	rings := opts.Rings
	if rings <= 0 {
		rings = DefaultRings
	}
	maxVal := opts.MaxValue
	if maxVal <= 0 {
		maxVal = 100
	}
	stroke := fallback(opts.StrokeColor, "#8b5cf6")
	fill := fallback(opts.FillColor, stroke)
	opacity := opts.FillOpacity
	if opacity <= 0 || opacity > 1 {
		opacity = 0.5
	}
	gridColor := fallback(opts.GridColor, "rgba(255,255,255,0.1)")
	labelColor := fallback(opts.LabelColor, "#ffffff")

	cx := float64(width) / 2
	cy := float64(height) / 2
	radius := math.Min(cx, cy) - 36
	if radius <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	n := len(labels)
	point := func(i int, r float64) (float64, float64) {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
	}

	titleID := makeID(opts.Title, "radar-title")
	descID := makeID(opts.Title, "radar-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Radar chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Category scores"))))

	// Polar grid
	for ring := 1; ring <= rings; ring++ {
		r := radius * float64(ring) / float64(rings)
		b.WriteString(fmt.Sprintf("<polygon points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\" aria-hidden=\"true\"></polygon>", polygon(n, func(i int) (float64, float64) { return point(i, r) }), gridColor))
	}
	for i := range labels {
		x, y := point(i, radius)
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\" aria-hidden=\"true\"></line>", cx, cy, x, y, gridColor))
	}

	clamped := func(v float64) float64 {
		return math.Max(0, math.Min(v, maxVal)) / maxVal * radius
	}
	b.WriteString(fmt.Sprintf("<polygon points=\"%s\" fill=\"%s\" fill-opacity=\"%.2f\" stroke=\"%s\" stroke-width=\"2\" aria-label=\"%s\"></polygon>",
		polygon(n, func(i int) (float64, float64) { return point(i, clamped(values[i])) }),
		fill, opacity, stroke, template.HTMLEscapeString(fallback(opts.SeriesName, "Scores"))))

	for i, label := range labels {
		x, y := point(i, radius+14)
		anchor := "middle"
		switch {
		case x < cx-1:
			anchor = "end"
		case x > cx+1:
			anchor = "start"
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"%s\">%s</text>", x, y+3, labelColor, anchor, template.HTMLEscapeString(label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func polygon(n int, at func(int) (float64, float64)) string {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		x, y := at(i)
		parts = append(parts, fmt.Sprintf("%.2f,%.2f", x, y))
	}
	return strings.Join(parts, " ")
}

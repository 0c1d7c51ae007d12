package svg

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var defaultPalette = []string{"#34d399", "#60a5fa", "#f59e0b", "#f472b6"}

// LineMulti renders a line chart with one series per line sharing the x-axis
// labels. Empty labels produce an empty-state chart.
func LineMulti(width, height int, labels []string, series []Series, opts LineOpts) (template.HTML, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if len(labels) == 0 {
		return Empty(width, height, fallback(opts.Title, "Line chart")), nil
	}
	if len(series) == 0 {
		return "", fmt.Errorf("svg: at least one series required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	if float64(width) <= 2*padding || float64(height) <= 2*padding {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := opts.MinValue, opts.MaxValue
	if almostEqual(minVal, maxVal) {
		minVal, maxVal = seriesBounds(series)
		if minVal > 0 {
			minVal = 0
		}
		if almostEqual(maxVal, minVal) {
			maxVal = minVal + 1
		}
	}

	axisColor := drawing.ParseColor(fallback(opts.AxisColor, "#ffffff"))
	gridColor := drawing.ParseColor(fallback(opts.GridColor, "rgba(255,255,255,0.1)"))
	textStyle := chart.Style{FontColor: axisColor, FontSize: 8, StrokeColor: axisColor, StrokeWidth: 1}

	// go-chart writes text nodes verbatim.
	xs := make([]float64, len(labels))
	xTicks := make([]chart.Tick, len(labels))
	for i, label := range labels {
		xs[i] = float64(i)
		xTicks[i] = chart.Tick{Value: float64(i), Label: template.HTMLEscapeString(label)}
	}
	xRange := &chart.ContinuousRange{Min: 0, Max: float64(len(labels) - 1)}
	if len(labels) == 1 {
		xRange = &chart.ContinuousRange{Min: -1, Max: 1}
	}

	yTicks := make([]chart.Tick, 0, tickCount+1)
	for i := 0; i <= tickCount; i++ {
		value := minVal + (maxVal-minVal)*float64(i)/float64(tickCount)
		yTicks = append(yTicks, chart.Tick{Value: value, Label: formatTick(value)})
	}

	pad := int(padding)
	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: drawing.ColorTransparent, Padding: chart.Box{Top: pad, Left: pad, Right: pad, Bottom: pad}},
		Canvas:     chart.Style{FillColor: drawing.ColorTransparent},
		XAxis:      chart.XAxis{Style: textStyle, Range: xRange, Ticks: xTicks},
		YAxis: chart.YAxis{
			Style:          textStyle,
			Range:          &chart.ContinuousRange{Min: minVal, Max: maxVal},
			Ticks:          yTicks,
			GridMajorStyle: chart.Style{StrokeColor: gridColor, StrokeWidth: 1, StrokeDashArray: []float64{3, 3}},
		},
	}
	for idx, s := range series {
		color := drawing.ParseColor(fallback(s.Color, defaultPalette[idx%len(defaultPalette)]))
		style := chart.Style{StrokeColor: color, StrokeWidth: 2}
		if opts.ShowDots {
			style.DotColor = color
			style.DotWidth = 3
		}
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    template.HTMLEscapeString(s.Name),
			XValues: xs,
			YValues: s.Values,
			Style:   style,
		})
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{FillColor: drawing.ColorTransparent, FontColor: axisColor, StrokeColor: gridColor})}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("svg: render line chart: %w", err)
	}
	return template.HTML(labelled(buf.String(), fallback(opts.Title, "Line chart"), fallback(opts.Description, "Trend data"))), nil
}

// labelled marks the rendered root as an image and adds title and desc
// elements naming it for assistive technology.
func labelled(doc, title, desc string) string {
	titleID := makeID(title, "line-title")
	descID := makeID(title, "line-desc")
	doc = strings.Replace(doc, "<svg ", fmt.Sprintf("<svg role=\"img\" aria-labelledby=\"%s %s\" ", titleID, descID), 1)
	end := strings.Index(doc, ">")
	if end < 0 {
		return doc
	}
	head := fmt.Sprintf("<title id=\"%s\">%s</title><desc id=\"%s\">%s</desc>",
		titleID, template.HTMLEscapeString(title), descID, template.HTMLEscapeString(desc))
	return doc[:end+1] + head + doc[end+1:]
}

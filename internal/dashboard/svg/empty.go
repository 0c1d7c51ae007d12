package svg

import (
	"fmt"
	"html/template"
)

// EmptyStateText is the caption of charts rendered without data.
const EmptyStateText = "No data available"

// Empty renders the placeholder shown when a chart has no points.
func Empty(width, height int, title string) template.HTML {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	titleID := makeID(title, "empty-title")
	return template.HTML(fmt.Sprintf(
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s\" data-empty=\"true\"><title id=\"%s\">%s</title><text x=\"%.2f\" y=\"%.2f\" fill=\"rgba(255,255,255,0.6)\" font-size=\"12\" text-anchor=\"middle\">%s</text></svg>",
		width, height, titleID, titleID, template.HTMLEscapeString(title), float64(width)/2, float64(height)/2, EmptyStateText,
	))
}

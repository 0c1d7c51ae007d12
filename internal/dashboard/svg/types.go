package svg

// Series is one named line of a multi-series chart.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
	// MinValue and MaxValue pin the y-axis when both are set.
	MinValue float64
	MaxValue float64
}

// RadarOpts customises the radar chart renderer.
type RadarOpts struct {
	Title       string
	Description string
	SeriesName  string
	StrokeColor string
	FillColor   string
	FillOpacity float64
	GridColor   string
	LabelColor  string
	Rings       int
	MaxValue    float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 480
	DefaultHeight  = 256
	DefaultPadding = 28.0
	DefaultTicks   = 5
	DefaultRings   = 5
)

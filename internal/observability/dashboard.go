package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/roadscore/roadscore/internal/dashboard"
)

// DashboardMetrics counts engine lifecycle events. It implements
// dashboard.Observer; its methods run on the loop goroutine.
type DashboardMetrics struct {
	rotations *prometheus.CounterVec
	reveals   *prometheus.CounterVec
	mounts    *prometheus.CounterVec
	teardowns *prometheus.CounterVec
	switches  *prometheus.CounterVec
	sessions  prometheus.Gauge
}

var _ dashboard.Observer = (*DashboardMetrics)(nil)

// NewDashboardMetrics registers the engine collectors. pending reports the
// number of armed timers and may be nil.
func NewDashboardMetrics(registerer prometheus.Registerer, pending func() int) (*DashboardMetrics, error) {
	m := &DashboardMetrics{
		rotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadscore_dashboard_insight_rotations_total",
			Help: "Advisory message rotations by view.",
		}, []string{"view"}),
		reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadscore_dashboard_score_reveals_total",
			Help: "Delayed score reveals by view.",
		}, []string{"view"}),
		mounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadscore_dashboard_view_mounts_total",
			Help: "Role views mounted.",
		}, []string{"view"}),
		teardowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadscore_dashboard_view_teardowns_total",
			Help: "Role views torn down.",
		}, []string{"view"}),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadscore_dashboard_view_switches_total",
			Help: "View selections that changed the active view.",
		}, []string{"from", "to"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roadscore_dashboard_sessions",
			Help: "Browser sessions with a mounted composer.",
		}),
	}
	collectors := []prometheus.Collector{m.rotations, m.reveals, m.mounts, m.teardowns, m.switches, m.sessions}
	if pending != nil {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "roadscore_dashboard_pending_timers",
			Help: "Timers armed on the dashboard loop.",
		}, func() float64 { return float64(pending()) }))
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *DashboardMetrics) InsightRotated(v dashboard.ActiveView) {
	m.rotations.WithLabelValues(v.String()).Inc()
}

func (m *DashboardMetrics) ScoreRevealed(v dashboard.ActiveView) {
	m.reveals.WithLabelValues(v.String()).Inc()
}

func (m *DashboardMetrics) ViewMounted(v dashboard.ActiveView) {
	m.mounts.WithLabelValues(v.String()).Inc()
}

func (m *DashboardMetrics) ViewTornDown(v dashboard.ActiveView) {
	m.teardowns.WithLabelValues(v.String()).Inc()
}

func (m *DashboardMetrics) ViewSwitched(from, to dashboard.ActiveView) {
	m.switches.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *DashboardMetrics) SessionsChanged(active int) {
	m.sessions.Set(float64(active))
}

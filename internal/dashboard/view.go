package dashboard

import (
	"github.com/google/uuid"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/dashboard/ui"
	"github.com/roadscore/roadscore/internal/telemetry"
)

// RoleView is one mounted instance of the dashboard view for a role. It owns
// its rotator and reveal controller; both die with Teardown.
type RoleView struct {
	id      uuid.UUID
	role    ActiveView
	store   *telemetry.Store
	rotator *Rotator
	reveal  *Reveal
	closed  bool
}

func mountView(role ActiveView, sched loop.Scheduler, store *telemetry.Store, settings Settings, observer Observer) (*RoleView, error) {
	view := &RoleView{id: uuid.New(), role: role, store: store}
	rotator, err := NewRotator(store.Advisories(), settings.RotationInterval, sched, OnRotate(func(RotationState) {
		observer.InsightRotated(role)
	}))
	if err != nil {
		return nil, err
	}
	reveal, err := NewReveal(settings.RevealDelay, settings.ScoreFor(role), sched, OnReveal(func(RevealState) {
		observer.ScoreRevealed(role)
	}))
	if err != nil {
		rotator.Stop()
		return nil, err
	}
	view.rotator = rotator
	view.reveal = reveal
	observer.ViewMounted(role)
	return view, nil
}

// ID returns the mount identifier. A fresh mount always gets a new one.
func (v *RoleView) ID() uuid.UUID {
	return v.id
}

// Role returns the role the view renders.
func (v *RoleView) Role() ActiveView {
	return v.role
}

// Teardown cancels every timer the view owns.
func (v *RoleView) Teardown() {
	if v.closed {
		return
	}
	v.closed = true
	v.rotator.Stop()
	v.reveal.Stop()
}

// Render builds the view's render tree. It has no side effects.
func (v *RoleView) Render() Tree {
	tree := Tree{
		View:         v.role,
		Title:        v.role.Title(),
		MountID:      v.id.String(),
		DataVersion:  v.store.Fingerprint(),
		Insight:      v.rotator.Current(),
		InsightIndex: v.rotator.State().CurrentIndex,
		Score:        v.reveal.State(),
		TimeSeries:   ui.ToTimeSeries(v.store.Monthly()),
		Radar:        ui.ToRadarSeries(v.store.Skills()),
	}
	switch v.role {
	case ViewCompany:
		panel := v.store.CompanyPanel()
		tree.Company = &panel
	default:
		panel := v.store.UserPanel()
		tree.User = &panel
	}
	return tree
}

// Tree is the render boundary: everything a page or JSON snapshot shows.
type Tree struct {
	View         ActiveView                `json:"view"`
	Title        string                    `json:"title"`
	MountID      string                    `json:"mount_id"`
	DataVersion  string                    `json:"data_version"`
	Insight      telemetry.AdvisoryMessage `json:"insight"`
	InsightIndex int                       `json:"insight_index"`
	Score        RevealState               `json:"score"`
	TimeSeries   []ui.TimeSeriesPoint      `json:"time_series"`
	Radar        []ui.RadarPoint           `json:"radar"`
	User         *telemetry.UserPanel      `json:"user,omitempty"`
	Company      *telemetry.CompanyPanel   `json:"company,omitempty"`
}

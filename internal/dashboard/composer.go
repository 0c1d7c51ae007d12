package dashboard

import (
	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/telemetry"
)

// Composer holds the active view selection and mounts exactly one RoleView
// at a time. A Composer is not safe for concurrent use; drive it from the
// loop that owns its scheduler.
type Composer struct {
	sched    loop.Scheduler
	store    *telemetry.Store
	settings Settings
	observer Observer
	initial  ActiveView
	active   ActiveView
	view     *RoleView
	closed   bool
}

// ComposerOption customises a Composer.
type ComposerOption func(*Composer)

// WithInitialView mounts v instead of the user view.
func WithInitialView(v ActiveView) ComposerOption {
	return func(c *Composer) {
		if v.Valid() {
			c.initial = v
		}
	}
}

// WithObserver attaches an engine observer.
func WithObserver(o Observer) ComposerOption {
	return func(c *Composer) {
		c.observer = observerOrNop(o)
	}
}

// NewComposer validates settings and mounts the initial view. Settings
// errors are returned before any timer is armed.
func NewComposer(sched loop.Scheduler, store *telemetry.Store, settings Settings, opts ...ComposerOption) (*Composer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if len(store.Advisories()) == 0 {
		return nil, ErrNoAdvisories
	}
	c := &Composer{
		sched:    sched,
		store:    store,
		settings: settings,
		observer: nopObserver{},
		initial:  ViewUser,
	}
	for _, opt := range opts {
		opt(c)
	}
	view, err := mountView(c.initial, sched, store, settings, c.observer)
	if err != nil {
		return nil, err
	}
	c.active = c.initial
	c.view = view
	return c, nil
}

// Active returns the selected view.
func (c *Composer) Active() ActiveView {
	return c.active
}

// SelectView switches the active view. Selecting the view already shown is
// a no-op and reports changed=false; otherwise the current view's timers are
// torn down and a fresh view is mounted with reset rotation and reveal.
func (c *Composer) SelectView(v ActiveView) (bool, error) {
	if !v.Valid() {
		return false, ErrUnknownView
	}
	if c.closed {
		return false, ErrClosed
	}
	if v == c.active {
		return false, nil
	}
	// Both steps run within one loop callback, so no timer of the old view
	// can fire between them.
	view, err := mountView(v, c.sched, c.store, c.settings, c.observer)
	if err != nil {
		return false, err
	}
	c.view.Teardown()
	c.observer.ViewTornDown(c.active)
	previous := c.active
	c.active = v
	c.view = view
	c.observer.ViewSwitched(previous, v)
	return true, nil
}

// Render returns the render tree of the mounted view.
func (c *Composer) Render() Tree {
	return c.view.Render()
}

// Close tears down the mounted view. Further selections fail with ErrClosed.
func (c *Composer) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.view.Teardown()
	c.observer.ViewTornDown(c.active)
}

package dashboard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/telemetry"
)

// evictAfterSweeps is the number of consecutive untouched sweeps after which
// a session is idle for longer than the TTL. Sweeps run every TTL/2.
const evictAfterSweeps = 3

// Factory builds a composer for a new session.
type Factory func(initial ActiveView) (*Composer, error)

// NewFactory returns a Factory that shares one store and settings.
func NewFactory(sched loop.Scheduler, store *telemetry.Store, settings Settings, opts ...ComposerOption) Factory {
	return func(initial ActiveView) (*Composer, error) {
		all := append([]ComposerOption{WithInitialView(initial)}, opts...)
		return NewComposer(sched, store, settings, all...)
	}
}

type session struct {
	composer   *Composer
	idleSweeps int
}

// Registry owns one composer per browser session. Idle sessions are torn
// down by a recurring sweep so abandoned tabs never leak timers. All methods
// must run on the loop driving sched.
type Registry struct {
	factory  Factory
	sessions map[string]*session
	sweep    loop.Timer
	observer Observer
	logger   *slog.Logger
	closed   bool
}

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithRegistryObserver reports the session count on every change.
func WithRegistryObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		r.observer = observerOrNop(o)
	}
}

// WithRegistryLogger sets the logger for session lifecycle events.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry arms the idle sweep.
func NewRegistry(sched loop.Scheduler, factory Factory, idleTTL time.Duration, opts ...RegistryOption) (*Registry, error) {
	if idleTTL <= 0 {
		return nil, fmt.Errorf("%w: idle ttl %s", ErrInvalidInterval, idleTTL)
	}
	r := &Registry{
		factory:  factory,
		sessions: make(map[string]*session),
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	interval := idleTTL / 2
	if interval <= 0 {
		interval = idleTTL
	}
	r.sweep = sched.Every(interval, func() { r.Sweep() })
	return r, nil
}

// Acquire returns the session's composer, creating it with the initial view
// when the session has none.
func (r *Registry) Acquire(sessionID string, initial ActiveView) (*Composer, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if s, ok := r.sessions[sessionID]; ok {
		s.idleSweeps = 0
		return s.composer, nil
	}
	composer, err := r.factory(initial)
	if err != nil {
		return nil, err
	}
	r.sessions[sessionID] = &session{composer: composer}
	r.observer.SessionsChanged(len(r.sessions))
	r.logger.Debug("dashboard session mounted", slog.String("session", sessionID), slog.String("view", composer.Active().String()))
	return composer, nil
}

// Release tears down the session's composer, if any.
func (r *Registry) Release(sessionID string) {
	s, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	s.composer.Close()
	delete(r.sessions, sessionID)
	r.observer.SessionsChanged(len(r.sessions))
}

// Sweep ages every session and tears down those idle past the TTL. It
// returns the number of sessions evicted.
func (r *Registry) Sweep() int {
	evicted := 0
	for id, s := range r.sessions {
		s.idleSweeps++
		if s.idleSweeps < evictAfterSweeps {
			continue
		}
		s.composer.Close()
		delete(r.sessions, id)
		evicted++
	}
	if evicted > 0 {
		r.observer.SessionsChanged(len(r.sessions))
		r.logger.Debug("dashboard sessions evicted", slog.Int("count", evicted), slog.Int("remaining", len(r.sessions)))
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return len(r.sessions)
}

// Close stops the sweep and tears down every session.
func (r *Registry) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.sweep.Stop()
	for id, s := range r.sessions {
		s.composer.Close()
		delete(r.sessions, id)
	}
	r.observer.SessionsChanged(0)
}

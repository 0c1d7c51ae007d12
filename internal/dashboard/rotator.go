package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/telemetry"
)

// DefaultRotationInterval is how long each advisory message stays on screen.
const DefaultRotationInterval = 8 * time.Second

// Rotator cycles through advisory messages on a recurring timer.
type Rotator struct {
	messages []telemetry.AdvisoryMessage
	index    int
	timer    loop.Timer
	onTick   func(RotationState)
}

// RotatorOption customises a Rotator.
type RotatorOption func(*Rotator)

// OnRotate registers a hook invoked after every advance.
func OnRotate(fn func(RotationState)) RotatorOption {
	return func(r *Rotator) {
		r.onTick = fn
	}
}

// NewRotator validates its inputs, then arms the recurring tick. No timer is
// armed when an error is returned.
func NewRotator(messages []telemetry.AdvisoryMessage, interval time.Duration, sched loop.Scheduler, opts ...RotatorOption) (*Rotator, error) {
	if len(messages) == 0 {
		return nil, ErrNoAdvisories
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: rotation interval %s", ErrInvalidInterval, interval)
	}
	r := &Rotator{messages: slices.Clone(messages)}
	for _, opt := range opts {
		opt(r)
	}
	r.timer = sched.Every(interval, r.advance)
	return r, nil
}

func (r *Rotator) advance() {
	r.index = (r.index + 1) % len(r.messages)
	if r.onTick != nil {
		r.onTick(r.State())
	}
}

// Current returns the advisory message currently selected.
func (r *Rotator) Current() telemetry.AdvisoryMessage {
	return r.messages[r.index]
}

// State returns the rotation position.
func (r *Rotator) State() RotationState {
	return RotationState{CurrentIndex: r.index}
}

// Stop cancels the recurring tick. It is safe to call more than once.
func (r *Rotator) Stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
}

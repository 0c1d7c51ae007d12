package dashboard

import (
	"fmt"
	"time"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
)

// DefaultRevealDelay is the latency of the "analysis in progress" indicator.
const DefaultRevealDelay = 500 * time.Millisecond

// Reveal shows a placeholder score once, after a fixed delay.
type Reveal struct {
	final    int
	state    RevealState
	timer    loop.Timer
	onReveal func(RevealState)
}

// RevealOption customises a Reveal.
type RevealOption func(*Reveal)

// OnReveal registers a hook invoked when the score is revealed.
func OnReveal(fn func(RevealState)) RevealOption {
	return func(r *Reveal) {
		r.onReveal = fn
	}
}

// NewReveal validates its inputs, then arms the one-shot timer.
func NewReveal(delay time.Duration, final int, sched loop.Scheduler, opts ...RevealOption) (*Reveal, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("%w: reveal delay %s", ErrInvalidInterval, delay)
	}
	if final < 0 || final > 100 {
		return nil, fmt.Errorf("%w: %d", ErrScoreOutOfRange, final)
	}
	r := &Reveal{final: final}
	for _, opt := range opts {
		opt(r)
	}
	r.timer = sched.After(delay, r.reveal)
	return r, nil
}

func (r *Reveal) reveal() {
	if r.state.Revealed {
		return
	}
	r.state = RevealState{Revealed: true, Value: r.final}
	if r.onReveal != nil {
		r.onReveal(r.state)
	}
}

// State returns the current reveal state.
func (r *Reveal) State() RevealState {
	return r.state
}

// Stop cancels a pending reveal.
func (r *Reveal) Stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
}

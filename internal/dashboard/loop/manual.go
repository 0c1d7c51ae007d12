package loop

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by a virtual clock. Callbacks run
// on the goroutine that calls Advance or Do.
type Manual struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     uint64
	timers  []*manualTimer
}

// NewManual returns a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every schedules a recurring callback.
func (m *Manual) Every(interval time.Duration, fn func()) Timer {
	return m.schedule(interval, interval, fn)
}

// After schedules a one-shot callback.
func (m *Manual) After(delay time.Duration, fn func()) Timer {
	return m.schedule(delay, 0, fn)
}

// Do runs fn immediately on the caller's goroutine. A panic in fn is
// returned as ErrCallbackPanic, as Loop.Do does.
func (m *Manual) Do(ctx context.Context, fn func()) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, rec)
		}
	}()
	fn()
	return nil
}

// Elapsed returns the virtual time since construction.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every timer that falls due in
// deadline order. Timers sharing a deadline fire in registration order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.elapsed + d
	m.mu.Unlock()
	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}
	m.mu.Lock()
	m.elapsed = target
	m.mu.Unlock()
}

func (m *Manual) popDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := -1
	for i, t := range m.timers {
		if t.deadline > target {
			continue
		}
		if idx < 0 || t.deadline < m.timers[idx].deadline ||
			(t.deadline == m.timers[idx].deadline && t.seq < m.timers[idx].seq) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	t := m.timers[idx]
	m.elapsed = t.deadline
	if t.interval > 0 {
		t.deadline += t.interval
	} else {
		m.removeLocked(t)
	}
	return t
}

func (m *Manual) schedule(delay, interval time.Duration, fn func()) Timer {
	if delay <= 0 {
		panic(fmt.Sprintf("loop: non-positive timer duration %s", delay))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, deadline: m.elapsed + delay, interval: interval, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) removeLocked(target *manualTimer) bool {
	for i, t := range m.timers {
		if t == target {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	m        *Manual
	deadline time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.removeLocked(t)
}

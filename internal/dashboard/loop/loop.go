// Package loop provides the single-threaded event loop that owns all
// dashboard state, plus the timers scheduled on it.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrClosed is returned when work is posted to a loop that has shut down.
	ErrClosed = errors.New("loop: closed")
	// ErrCallbackPanic is returned by Do when fn panicked.
	ErrCallbackPanic = errors.New("loop: callback panicked")
)

// Timer is a scheduled callback. After Stop returns the callback never runs
// again; Stop reports whether it cancelled an armed timer.
type Timer interface {
	Stop() bool
}

// Scheduler registers recurring and one-shot callbacks.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
	After(delay time.Duration, fn func()) Timer
}

// Runner executes a closure on the loop and waits for it to finish.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Loop serialises callbacks onto one goroutine. Timer callbacks and closures
// passed to Do never overlap, so state owned by the loop needs no locking.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
	pending   atomic.Int64
	logger    *slog.Logger
}

// Option customises a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for recovered callback panics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithQueueSize sets the capacity of the callback queue.
func WithQueueSize(size int) Option {
	return func(l *Loop) {
		if size > 0 {
			l.queue = make(chan func(), size)
		}
	}
}

// New constructs a Loop. Call Run to start processing.
func New(opts ...Option) *Loop {
	l := &Loop{
		queue:  make(chan func(), 256),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes callbacks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			l.invoke(fn)
		}
	}
}

// Close stops the loop. Queued callbacks are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Post enqueues fn without waiting. It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and blocks until it returns. It must not be called
// from a loop callback. When ctx expires first fn may still run later.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	var panicErr error
	if !l.Post(func() {
		defer close(finished)
		panicErr = l.guard(fn)
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return panicErr
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// Pending returns the number of armed timers.
func (l *Loop) Pending() int {
	return int(l.pending.Load())
}

// Every schedules fn to run on the loop every interval until stopped.
func (l *Loop) Every(interval time.Duration, fn func()) Timer {
	return l.schedule(interval, interval, fn)
}

// After schedules fn to run once on the loop after delay.
func (l *Loop) After(delay time.Duration, fn func()) Timer {
	return l.schedule(delay, 0, fn)
}

func (l *Loop) schedule(delay, interval time.Duration, fn func()) Timer {
	if delay <= 0 {
		panic(fmt.Sprintf("loop: non-positive timer duration %s", delay))
	}
	t := &loopTimer{loop: l, fn: fn, interval: interval}
	l.pending.Add(1)
	t.mu.Lock()
	t.deadline = time.Now().Add(delay)
	t.timer = time.AfterFunc(delay, t.post)
	t.mu.Unlock()
	return t
}

func (l *Loop) invoke(fn func()) {
	_ = l.guard(fn)
}

// guard runs fn and converts a panic into ErrCallbackPanic so one bad
// callback cannot stop the loop.
func (l *Loop) guard(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			l.logger.Error("loop callback panic", slog.Any("panic", rec))
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, rec)
		}
	}()
	fn()
	return nil
}

type loopTimer struct {
	loop     *Loop
	fn       func()
	interval time.Duration
	stopped  atomic.Bool

	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
}

// post runs on the runtime timer goroutine and hands the firing to the loop.
func (t *loopTimer) post() {
	if t.stopped.Load() {
		return
	}
	t.loop.Post(t.fire)
}

// fire runs on the loop. The stopped flag is re-checked here because a
// firing may have been queued before Stop was called.
func (t *loopTimer) fire() {
	if t.interval == 0 {
		if !t.stopped.CompareAndSwap(false, true) {
			return
		}
		t.loop.pending.Add(-1)
		t.fn()
		return
	}
	t.mu.Lock()
	if t.stopped.Load() {
		t.mu.Unlock()
		return
	}
	t.deadline = t.deadline.Add(t.interval)
	next := time.Until(t.deadline)
	if next <= 0 {
		t.deadline = time.Now().Add(t.interval)
		next = t.interval
	}
	t.timer.Reset(next)
	t.mu.Unlock()
	t.fn()
}

func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.mu.Lock()
	t.timer.Stop()
	t.mu.Unlock()
	t.loop.pending.Add(-1)
	return true
}

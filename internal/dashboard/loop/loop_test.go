package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		l.Close()
	})
	return l
}

func TestLoopDoRunsClosure(t *testing.T) {
	l := startLoop(t)
	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopAfterFiresOnce(t *testing.T) {
	l := startLoop(t)
	var fired atomic.Int32
	done := make(chan struct{})
	l.After(5*time.Millisecond, func() {
		fired.Add(1)
		close(done)
	})
	assert.Equal(t, 1, l.Pending())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, l.Pending())
}

func TestLoopEveryStopsAfterStop(t *testing.T) {
	l := startLoop(t)
	var ticks atomic.Int32
	var timer Timer
	reached := make(chan struct{})
	require.NoError(t, l.Do(context.Background(), func() {
		timer = l.Every(2*time.Millisecond, func() {
			if ticks.Add(1) == 3 {
				close(reached)
			}
		})
	}))

	select {
	case <-reached:
	case <-time.After(time.Second):
		t.Fatal("ticker did not reach three ticks")
	}
	var stopped bool
	require.NoError(t, l.Do(context.Background(), func() { stopped = timer.Stop() }))
	assert.True(t, stopped)
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
	assert.Equal(t, 0, l.Pending())
	assert.False(t, timer.Stop())
}

func TestLoopStopBeforeDeadline(t *testing.T) {
	l := startLoop(t)
	var fired atomic.Bool
	timer := l.After(10*time.Millisecond, func() { fired.Store(true) })
	assert.True(t, timer.Stop())
	time.Sleep(30 * time.Millisecond)
	assert.False(t, fired.Load())
	assert.Equal(t, 0, l.Pending())
}

func TestLoopRecoversPanics(t *testing.T) {
	l := startLoop(t)
	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopDoReportsPanic(t *testing.T) {
	l := startLoop(t)
	err := l.Do(context.Background(), func() { panic("boom") })
	require.ErrorIs(t, err, ErrCallbackPanic)
	assert.Contains(t, err.Error(), "boom")

	ran := false
	require.NoError(t, l.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran, "loop must keep serving after a panicking Do")
}

func TestLoopClosed(t *testing.T) {
	l := New()
	l.Close()
	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrClosed)
}

func TestLoopRejectsNonPositiveDuration(t *testing.T) {
	l := New()
	assert.Panics(t, func() { l.After(0, func() {}) })
	assert.Panics(t, func() { l.Every(-time.Second, func() {}) })
}

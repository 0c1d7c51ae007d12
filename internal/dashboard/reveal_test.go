package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
)

func TestRevealTransitionsOnce(t *testing.T) {
	sched := loop.NewManual()
	transitions := 0
	reveal, err := NewReveal(DefaultRevealDelay, 72, sched, OnReveal(func(RevealState) { transitions++ }))
	require.NoError(t, err)

	assert.Equal(t, RevealState{}, reveal.State())
	sched.Advance(DefaultRevealDelay - time.Millisecond)
	assert.False(t, reveal.State().Revealed)

	sched.Advance(time.Millisecond)
	assert.Equal(t, RevealState{Revealed: true, Value: 72}, reveal.State())

	sched.Advance(time.Hour)
	assert.Equal(t, 1, transitions)
	assert.Equal(t, RevealState{Revealed: true, Value: 72}, reveal.State())
	assert.Zero(t, sched.Pending())
}

func TestRevealStopBeforeDelay(t *testing.T) {
	sched := loop.NewManual()
	reveal, err := NewReveal(DefaultRevealDelay, 72, sched)
	require.NoError(t, err)

	sched.Advance(200 * time.Millisecond)
	reveal.Stop()
	sched.Advance(time.Second)
	assert.Equal(t, RevealState{}, reveal.State())
	assert.Zero(t, sched.Pending())
}

func TestRevealStopAfterRevealKeepsValue(t *testing.T) {
	sched := loop.NewManual()
	reveal, err := NewReveal(DefaultRevealDelay, 68, sched)
	require.NoError(t, err)

	sched.Advance(DefaultRevealDelay)
	reveal.Stop()
	assert.Equal(t, RevealState{Revealed: true, Value: 68}, reveal.State())
}

func TestRevealValidation(t *testing.T) {
	sched := loop.NewManual()

	_, err := NewReveal(0, 72, sched)
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewReveal(time.Second, 101, sched)
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = NewReveal(time.Second, -1, sched)
	require.ErrorIs(t, err, ErrScoreOutOfRange)

	assert.Zero(t, sched.Pending())
}

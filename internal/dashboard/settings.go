package dashboard

import (
	"fmt"
	"time"
)

// Settings carries the timing constants and reveal values of the engine.
type Settings struct {
	RotationInterval time.Duration
	RevealDelay      time.Duration
	UserScore        int
	CompanyScore     int
}

// DefaultSettings returns the reference dashboard configuration.
func DefaultSettings() Settings {
	return Settings{
		RotationInterval: DefaultRotationInterval,
		RevealDelay:      DefaultRevealDelay,
		UserScore:        72,
		CompanyScore:     68,
	}
}

// Validate rejects settings that would arm a timer with a non-positive
// duration or reveal an impossible score.
func (s Settings) Validate() error {
	if s.RotationInterval <= 0 {
		return fmt.Errorf("%w: rotation interval %s", ErrInvalidInterval, s.RotationInterval)
	}
	if s.RevealDelay <= 0 {
		return fmt.Errorf("%w: reveal delay %s", ErrInvalidInterval, s.RevealDelay)
	}
	for _, score := range []int{s.UserScore, s.CompanyScore} {
		if score < 0 || score > 100 {
			return fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
		}
	}
	return nil
}

// ScoreFor returns the reveal value of a role.
func (s Settings) ScoreFor(v ActiveView) int {
	if v == ViewCompany {
		return s.CompanyScore
	}
	return s.UserScore
}

package scale

import (
	"math"
	"time"
)

// DefaultSmoothingTime is the time constant over which a smoothed value
// closes ~63% of the gap to its target. One 60 Hz frame blends about 5%.
const DefaultSmoothingTime = 325 * time.Millisecond

// Smoother eases a value toward a moving target with exponential decay.
// The blend depends only on elapsed time, so animation speed stays the
// same regardless of how often Update is called.
type Smoother struct {
	value float64
	tau   time.Duration
}

// NewSmoother returns a smoother with the given time constant, starting
// at zero. A non-positive tau falls back to DefaultSmoothingTime.
func NewSmoother(tau time.Duration) *Smoother {
	if tau <= 0 {
		tau = DefaultSmoothingTime
	}
	return &Smoother{tau: tau}
}

// Set snaps the smoothed value without easing.
func (s *Smoother) Set(v float64) { s.value = v }

// Value returns the current smoothed value.
func (s *Smoother) Value() float64 { return s.value }

// Update moves the smoothed value toward target given the elapsed time
// since the previous update, and returns the new value.
func (s *Smoother) Update(target float64, elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	blend := 1 - math.Exp(-elapsed.Seconds()/s.tau.Seconds())
	s.value += (target - s.value) * blend
	return s.value
}

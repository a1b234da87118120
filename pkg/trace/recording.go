package trace

import (
	"math"
	"time"
)

// cell accumulates one stat over one period.
type cell struct {
	sum   float64
	min   float64
	max   float64
	last  float64
	count int
}

func newCell() *cell {
	return &cell{min: math.Inf(1), max: math.Inf(-1), last: math.NaN()}
}

// Recording holds one completed period of measurements for every stat
// that was touched during it. Recordings are immutable once their period
// closes.
type Recording struct {
	duration time.Duration
	cells    map[string]*cell
}

func newRecording() *Recording {
	return &Recording{cells: make(map[string]*cell)}
}

func (r *Recording) cellFor(stat *Stat) *cell {
	if stat == nil {
		return nil
	}
	return r.cells[stat.name]
}

// Duration returns the length of the recorded period.
func (r *Recording) Duration() time.Duration { return r.duration }

// SampleCount returns how many measurements the period holds for stat.
func (r *Recording) SampleCount(stat *Stat) int {
	if c := r.cellFor(stat); c != nil {
		return c.count
	}
	return 0
}

// LastValue returns the most recent measurement in the period. Sample
// stats carry their last value across period boundaries; for other kinds
// an untouched period yields NaN.
func (r *Recording) LastValue(stat *Stat) float64 {
	if c := r.cellFor(stat); c != nil {
		return c.last
	}
	return math.NaN()
}

// Sum returns the period total for stat.
func (r *Recording) Sum(stat *Stat) float64 {
	if c := r.cellFor(stat); c != nil {
		return c.sum
	}
	return 0
}

// Mean returns the period mean, or NaN when the period holds no samples.
func (r *Recording) Mean(stat *Stat) float64 {
	if c := r.cellFor(stat); c != nil && c.count > 0 {
		return c.sum / float64(c.count)
	}
	return math.NaN()
}

// Min returns the smallest measurement in the period, or NaN when empty.
func (r *Recording) Min(stat *Stat) float64 {
	if c := r.cellFor(stat); c != nil && c.count > 0 {
		return c.min
	}
	return math.NaN()
}

// Max returns the largest measurement in the period, or NaN when empty.
func (r *Recording) Max(stat *Stat) float64 {
	if c := r.cellFor(stat); c != nil && c.count > 0 {
		return c.max
	}
	return math.NaN()
}

// PerSec returns the period total divided by the period duration.
func (r *Recording) PerSec(stat *Stat) float64 {
	secs := r.duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return r.Sum(stat) / secs
}

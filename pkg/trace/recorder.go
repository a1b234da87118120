// Package trace records named counters as bounded per-period time series.
// A Recorder is the registry and the history in one: stats register under
// unique names with one of three accumulator kinds, measurements land in
// the currently open period, and NextPeriod rolls the open period into a
// fixed-length most-recent-first ring.
package trace

import (
	"math"
	"sync"
	"time"
)

// DefaultMaxPeriods bounds the history ring when no length is given.
const DefaultMaxPeriods = 200

// Recorder registers named stats and accumulates their measurements into
// a bounded ring of completed periods.
//
// Recording and reading may happen from different goroutines (a sampler
// ticker versus a render loop), so all methods lock. Completed Recordings
// are immutable and safe to hold across calls.
type Recorder struct {
	mu         sync.Mutex
	stats      map[string]*Stat
	periods    []*Recording
	maxPeriods int
	cur        *Recording
	curStart   time.Time
}

// NewRecorder returns a Recorder keeping at most maxPeriods completed
// periods. Non-positive maxPeriods falls back to DefaultMaxPeriods.
func NewRecorder(maxPeriods int) *Recorder {
	if maxPeriods <= 0 {
		maxPeriods = DefaultMaxPeriods
	}
	return &Recorder{
		stats:      make(map[string]*Stat),
		maxPeriods: maxPeriods,
		cur:        newRecording(),
	}
}

// RegisterCounter registers a monotonic event counter, displayed as a
// rate. Registering an existing name returns the existing handle when the
// kinds agree and nil when they conflict: a name is bound to exactly one
// kind.
func (r *Recorder) RegisterCounter(name, unit, description string) *Stat {
	return r.register(name, unit, description, Counter)
}

// RegisterEvent registers a stat for discrete measurements.
func (r *Recorder) RegisterEvent(name, unit, description string) *Stat {
	return r.register(name, unit, description, Event)
}

// RegisterSample registers a stat for a continuously sampled value. The
// latest sample carries across period boundaries.
func (r *Recorder) RegisterSample(name, unit, description string) *Stat {
	return r.register(name, unit, description, Sample)
}

func (r *Recorder) register(name, unit, description string, kind Kind) *Stat {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.stats[name]; ok {
		if existing.kind == kind {
			return existing
		}
		return nil
	}
	stat := &Stat{name: name, unit: unit, description: description, kind: kind}
	r.stats[name] = stat
	return stat
}

// Lookup resolves a stat name to its handle and kind. Unregistered names
// return (nil, Unbound); callers are expected to tolerate that.
func (r *Recorder) Lookup(name string) (*Stat, Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stat, ok := r.stats[name]; ok {
		return stat, stat.kind
	}
	return nil, Unbound
}

// Record adds a measurement to the open period. Counter stats treat v as
// an increment; Event and Sample stats treat it as a value.
func (r *Recorder) Record(stat *Stat, v float64) {
	if stat == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.cur.cells[stat.name]
	if c == nil {
		c = newCell()
		r.cur.cells[stat.name] = c
	}
	switch stat.kind {
	case Counter:
		c.sum += v
		c.count++
		c.last = c.sum
	case Event, Sample:
		c.sum += v
		c.count++
		c.last = v
		c.min = math.Min(c.min, v)
		c.max = math.Max(c.max, v)
	case Unbound:
		// handles never carry this kind
	}
}

// NextPeriod closes the open period at now and pushes it onto the ring,
// evicting the oldest period once the ring is full. The first call only
// establishes the period origin.
func (r *Recorder) NextPeriod(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.curStart.IsZero() {
		r.curStart = now
		return
	}

	r.cur.duration = now.Sub(r.curStart)
	r.periods = append(r.periods, r.cur)
	if len(r.periods) > r.maxPeriods {
		n := copy(r.periods, r.periods[1:])
		r.periods = r.periods[:n]
	}

	next := newRecording()
	for name, stat := range r.stats {
		if stat.kind != Sample {
			continue
		}
		if c := r.cur.cells[name]; c != nil && !math.IsNaN(c.last) {
			nc := newCell()
			nc.last = c.last
			next.cells[name] = nc
		}
	}
	r.cur = next
	r.curStart = now
}

// NumPeriods returns how many completed periods the ring holds.
func (r *Recorder) NumPeriods() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.periods)
}

// Prev returns the i-th most recently completed period; Prev(1) is the
// newest. Out-of-range indexes return nil.
func (r *Recorder) Prev(i int) *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prevLocked(i)
}

func (r *Recorder) prevLocked(i int) *Recording {
	if i < 1 || i > len(r.periods) {
		return nil
	}
	return r.periods[len(r.periods)-i]
}

// LastValue returns the newest period's last measurement for stat, or NaN
// when nothing has been recorded yet.
func (r *Recorder) LastValue(stat *Stat) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec := r.prevLocked(1); rec != nil {
		return rec.LastValue(stat)
	}
	return math.NaN()
}

// PerSec returns the newest period's rate for stat.
func (r *Recorder) PerSec(stat *Stat) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec := r.prevLocked(1); rec != nil {
		return rec.PerSec(stat)
	}
	return 0
}

// PeriodMin returns the smallest measurement across the last n periods,
// ignoring periods without samples; NaN when none have any.
func (r *Recorder) PeriodMin(stat *Stat, n int) float64 {
	return r.fold(n, math.Inf(1), func(acc float64, rec *Recording) (float64, bool) {
		if rec.SampleCount(stat) == 0 {
			return acc, false
		}
		return math.Min(acc, rec.Min(stat)), true
	})
}

// PeriodMax returns the largest measurement across the last n periods,
// ignoring periods without samples; NaN when none have any.
func (r *Recorder) PeriodMax(stat *Stat, n int) float64 {
	return r.fold(n, math.Inf(-1), func(acc float64, rec *Recording) (float64, bool) {
		if rec.SampleCount(stat) == 0 {
			return acc, false
		}
		return math.Max(acc, rec.Max(stat)), true
	})
}

// PeriodMean returns the mean of per-period means across the last n
// periods with samples; NaN when none have any.
func (r *Recorder) PeriodMean(stat *Stat, n int) float64 {
	sum, count := 0.0, 0
	r.walk(n, func(rec *Recording) {
		if rec.SampleCount(stat) > 0 {
			sum += rec.Mean(stat)
			count++
		}
	})
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// PeriodMinPerSec returns the lowest per-period rate across the last n
// periods. Periods without events legitimately count as rate zero.
func (r *Recorder) PeriodMinPerSec(stat *Stat, n int) float64 {
	return r.fold(n, math.Inf(1), func(acc float64, rec *Recording) (float64, bool) {
		return math.Min(acc, rec.PerSec(stat)), true
	})
}

// PeriodMaxPerSec returns the highest per-period rate across the last n
// periods.
func (r *Recorder) PeriodMaxPerSec(stat *Stat, n int) float64 {
	return r.fold(n, math.Inf(-1), func(acc float64, rec *Recording) (float64, bool) {
		return math.Max(acc, rec.PerSec(stat)), true
	})
}

// PeriodMeanPerSec returns the mean per-period rate across the last n
// periods; NaN when the ring is empty.
func (r *Recorder) PeriodMeanPerSec(stat *Stat, n int) float64 {
	sum, count := 0.0, 0
	r.walk(n, func(rec *Recording) {
		sum += rec.PerSec(stat)
		count++
	})
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

func (r *Recorder) walk(n int, visit func(*Recording)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.periods) {
		n = len(r.periods)
	}
	for i := 1; i <= n; i++ {
		visit(r.periods[len(r.periods)-i])
	}
}

// fold reduces the last n periods; the step reports whether it consumed
// the period. NaN when nothing was consumed.
func (r *Recorder) fold(n int, acc float64, step func(float64, *Recording) (float64, bool)) float64 {
	any := false
	r.walk(n, func(rec *Recording) {
		var used bool
		acc, used = step(acc, rec)
		any = any || used
	})
	if !any {
		return math.NaN()
	}
	return acc
}

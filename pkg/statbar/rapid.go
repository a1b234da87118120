package statbar

import (
	"math"
	"time"

	"github.com/dkoosis/statbar/pkg/trace"
)

// periodValue extracts the comparison value for one recorded period:
// the period sum for counter stats, the last value otherwise.
type periodValue func(*trace.Recording, *trace.Stat) float64

func lastValueOf(rec *trace.Recording, stat *trace.Stat) float64 { return rec.LastValue(stat) }
func sumOf(rec *trace.Recording, stat *trace.Stat) float64       { return rec.Sum(stat) }

// countRapidChanges walks completed periods most-recent-first, counting
// value transitions spaced closer than threshold, until the examined
// periods cover the window or run out. Untouched periods never count as
// transitions.
func countRapidChanges(rec *trace.Recorder, stat *trace.Stat, value periodValue, window, threshold time.Duration) int {
	numPeriods := rec.NumPeriods()
	if numPeriods < 2 {
		return 0
	}

	last := value(rec.Prev(1), stat)
	var elapsed, sinceChange time.Duration
	changes := 0
	for i := 2; i <= numPeriods; i++ {
		p := rec.Prev(i)
		cur := value(p, stat)

		switch {
		case math.IsNaN(cur) || math.IsNaN(last):
			sinceChange += p.Duration()
		case cur != last:
			if sinceChange < threshold {
				changes++
			}
			sinceChange = 0
		default:
			sinceChange += p.Duration()
		}
		last = cur

		elapsed += p.Duration()
		if elapsed > window {
			break
		}
	}
	return changes
}

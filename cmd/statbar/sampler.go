package main

import (
	"runtime"
	"time"

	"github.com/dkoosis/statbar/pkg/trace"
)

// sampler feeds Go runtime metrics into a trace recorder. Stat names
// here are what .statbar.yaml presets bind against.
type sampler struct {
	rec *trace.Recorder

	goroutines *trace.Stat
	heap       *trace.Stat
	allocs     *trace.Stat
	gcPause    *trace.Stat

	lastMallocs uint64
	lastPause   uint64
	seeded      bool
}

func newSampler(rec *trace.Recorder) *sampler {
	return &sampler{
		rec:        rec,
		goroutines: rec.RegisterSample("goroutines", "", "live goroutine count"),
		heap:       rec.RegisterSample("heap", "MB", "heap bytes in use"),
		allocs:     rec.RegisterCounter("allocs", "obj", "heap objects allocated"),
		gcPause:    rec.RegisterEvent("gc pause", "ms", "stop-the-world pause time"),
	}
}

// sample records one reading of every stat and closes the period.
func (s *sampler) sample(now time.Time) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s.rec.Record(s.goroutines, float64(runtime.NumGoroutine()))
	s.rec.Record(s.heap, float64(mem.HeapInuse)/(1024*1024))

	if s.seeded {
		if d := mem.Mallocs - s.lastMallocs; d > 0 {
			s.rec.Record(s.allocs, float64(d))
		}
		if d := mem.PauseTotalNs - s.lastPause; d > 0 {
			s.rec.Record(s.gcPause, float64(d)/1e6)
		}
	}
	s.lastMallocs = mem.Mallocs
	s.lastPause = mem.PauseTotalNs
	s.seeded = true

	s.rec.NextPeriod(now)
}

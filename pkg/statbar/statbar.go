// Package statbar renders a named counter as an auto-scaled bar widget
// with tick marks, current/mean markers, and an optional scrolling history
// graph. Each frame the widget emits a pure scene.Frame draw list; it
// never talks to a terminal itself.
package statbar

import (
	"math"
	"strconv"
	"time"

	"github.com/dkoosis/statbar/pkg/scale"
	"github.com/dkoosis/statbar/pkg/scene"
	"github.com/dkoosis/statbar/pkg/trace"
)

// Orientation selects which way the history graph scrolls: Vertical bars
// have a horizontal value axis and scroll upward, Horizontal bars have a
// vertical value axis and scroll leftward.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

const (
	// DefaultRefreshInterval caps how often the rendered value text may
	// change; between refreshes the previous value is reused.
	DefaultRefreshInterval = 250 * time.Millisecond

	// DefaultRapidChangeThreshold is the spacing under which two value
	// transitions count as one rapid change. The source this widget
	// descends from used both 0.2s and 0.3s; it is a single configurable
	// knob here (see DESIGN.md).
	DefaultRapidChangeThreshold = 200 * time.Millisecond

	// RapidChangeWindow is the span over which rapid changes are measured.
	RapidChangeWindow = time.Second

	// MaxRapidChangesPerSec is the measured rate above which a sample
	// stat displays its mean instead of the jittering current value.
	MaxRapidChangesPerSec = 10

	DefaultHistoryFrames      = 200
	DefaultShortHistoryFrames = 20
	DefaultMaxHeight          = 12
	DefaultDecimalDigits      = 3

	// Cells reserved right of a horizontal bar for tick labels.
	horizLabelReserve = 8
)

// Config describes one stat bar. The zero value is not useful; start from
// NewConfig and override fields as needed.
type Config struct {
	// Label is the widget caption; Stat names the counter to sample.
	Label string
	Stat  string

	// UnitLabel overrides the stat's own unit in the value readout.
	UnitLabel string

	// Fixed bounds and tick spacing. A side with its AutoScale flag set
	// ignores the fixed bound and snaps to the observed data instead.
	BarMin, BarMax float64
	TickSpacing    float64
	AutoScaleMin   bool
	AutoScaleMax   bool

	DecimalDigits      int
	HistoryFrames      int // periods shown with the history graph open
	ShortHistoryFrames int // periods aggregated when it is closed
	MaxHeight          int // rows requested when the history graph is open

	ShowBar     bool
	ShowHistory bool
	Orientation Orientation

	RapidChangeThreshold time.Duration
	RefreshInterval      time.Duration
	SmoothingTime        time.Duration
}

// NewConfig returns a Config for stat with auto-scaled bounds and the
// bar visible.
func NewConfig(label, stat string) Config {
	return Config{
		Label:        label,
		Stat:         stat,
		AutoScaleMin: true,
		AutoScaleMax: true,
		ShowBar:      true,
	}
}

// Bar is one stat-bar widget instance. It holds no ownership over the
// sampled statistic, only the lookup name, and tolerates the name being
// unregistered. Not safe for concurrent use; call Frame from one
// goroutine.
type Bar struct {
	cfg Config

	minBar, maxBar float64
	curMin, curMax *scale.Smoother
	tickValue      float64

	showBar     bool
	showHistory bool

	width, height int

	lastDisplay float64
	lastRefresh time.Time
	lastFrame   time.Time
}

// New builds a Bar from cfg, filling in defaults for zero fields.
func New(cfg Config) *Bar {
	if cfg.DecimalDigits == 0 {
		cfg.DecimalDigits = DefaultDecimalDigits
	}
	if cfg.HistoryFrames <= 0 {
		cfg.HistoryFrames = DefaultHistoryFrames
	}
	if cfg.ShortHistoryFrames <= 0 {
		cfg.ShortHistoryFrames = DefaultShortHistoryFrames
	}
	if cfg.MaxHeight <= 0 {
		cfg.MaxHeight = DefaultMaxHeight
	}
	if cfg.RapidChangeThreshold <= 0 {
		cfg.RapidChangeThreshold = DefaultRapidChangeThreshold
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}

	b := &Bar{
		cfg:         cfg,
		minBar:      math.Min(cfg.BarMin, cfg.BarMax),
		maxBar:      math.Max(cfg.BarMin, cfg.BarMax),
		curMin:      scale.NewSmoother(cfg.SmoothingTime),
		curMax:      scale.NewSmoother(cfg.SmoothingTime),
		tickValue:   cfg.TickSpacing,
		showBar:     cfg.ShowBar,
		showHistory: cfg.ShowHistory,
	}
	b.curMax.Set(b.maxBar)

	if cfg.TickSpacing == 0 && !cfg.AutoScaleMin && !cfg.AutoScaleMax {
		b.tickValue = scale.TickValue(b.minBar, b.maxBar)
	}
	return b
}

// Label returns the widget caption.
func (b *Bar) Label() string { return b.cfg.Label }

// StatName returns the name of the statistic the widget samples.
func (b *Bar) StatName() string { return b.cfg.Stat }

// Resize sets the widget's frame size in cells.
func (b *Bar) Resize(width, height int) {
	b.width = width
	b.height = height
}

// SetRange fixes the displayed bounds and recomputes the tick spacing.
func (b *Bar) SetRange(barMin, barMax float64) {
	b.minBar = math.Min(barMin, barMax)
	b.maxBar = math.Max(barMin, barMax)
	b.tickValue = scale.TickValue(b.minBar, b.maxBar)
}

// Range returns the current target bounds.
func (b *Bar) Range() (barMin, barMax float64) { return b.minBar, b.maxBar }

// TickSpacing returns the current tick spacing.
func (b *Bar) TickSpacing() float64 { return b.tickValue }

// ShowingBar reports whether the graphical bar is visible.
func (b *Bar) ShowingBar() bool { return b.showBar }

// ShowingHistory reports whether the history graph is visible.
func (b *Bar) ShowingHistory() bool { return b.showHistory }

// ToggleDisplay cycles the display mode: bar, bar with history, then
// label only. Horizontal bars always pair the bar with its history.
func (b *Bar) ToggleDisplay() {
	if b.showBar {
		if b.showHistory || b.cfg.Orientation == Horizontal {
			b.showBar = false
			b.showHistory = false
		} else {
			b.showHistory = true
		}
	} else {
		b.showBar = true
		if b.cfg.Orientation == Horizontal {
			b.showHistory = true
		}
	}
}

// RequiredHeight reports the rows the widget wants from its host layout.
func (b *Bar) RequiredHeight() int {
	switch {
	case b.showBar && b.showHistory:
		return b.cfg.MaxHeight
	case b.showBar:
		return 5
	default:
		return 1
	}
}

// geometry is the bar's cell layout for one frame. The value axis runs
// left-to-right for vertical bars and bottom-to-top for horizontal ones.
type geometry struct {
	barX, barY, barW, barH int
}

func (g geometry) axisSpan(o Orientation) int {
	if o == Horizontal {
		return g.barH
	}
	return g.barW
}

func (g geometry) scrollSpan(o Orientation) int {
	if o == Horizontal {
		return g.barW
	}
	return g.barH
}

func (b *Bar) layout() geometry {
	g := geometry{barX: 0, barY: 1, barW: b.width, barH: b.height - 2}
	if b.cfg.Orientation == Horizontal {
		g.barW = b.width - horizLabelReserve
		g.barH = b.height - 1
	}
	if g.barW < 1 {
		g.barW = 1
	}
	if g.barH < 1 {
		g.barH = 1
	}
	return g
}

// Frame computes the widget's draw list for one render pass. The only
// state it mutates is the widget's own: smoothed bounds, the displayed
// value cache, and the refresh timer. An unbound stat yields a label-only
// frame.
func (b *Bar) Frame(now time.Time, rec *trace.Recorder) scene.Frame {
	fr := scene.Frame{Width: b.width, Height: b.height}
	fr.Text(0, 0, b.cfg.Label, scene.AlignLeft, false)

	var elapsed time.Duration
	if !b.lastFrame.IsZero() {
		elapsed = now.Sub(b.lastFrame)
	}
	b.lastFrame = now

	var stat *trace.Stat
	kind := trace.Unbound
	if rec != nil {
		stat, kind = rec.Lookup(b.cfg.Stat)
	}
	if kind == trace.Unbound {
		return fr
	}

	numFrames := b.cfg.ShortHistoryFrames
	if b.showHistory {
		numFrames = b.cfg.HistoryFrames
	}

	unit := b.cfg.UnitLabel
	var current, lo, hi, mean, display float64
	rapidChanges := 0

	switch kind {
	case trace.Counter:
		if unit == "" {
			unit = stat.Unit() + "/s"
		}
		current = rec.PerSec(stat)
		lo = rec.PeriodMinPerSec(stat, numFrames)
		hi = rec.PeriodMaxPerSec(stat, numFrames)
		mean = rec.PeriodMeanPerSec(stat, numFrames)
		display = mean

	case trace.Event:
		if unit == "" {
			unit = stat.Unit()
		}
		current = rec.LastValue(stat)
		lo = rec.PeriodMin(stat, numFrames)
		hi = rec.PeriodMax(stat, numFrames)
		mean = rec.PeriodMean(stat, numFrames)
		// measured but not gating for event stats
		rapidChanges = countRapidChanges(rec, stat, lastValueOf, RapidChangeWindow, b.cfg.RapidChangeThreshold)
		display = mean

	case trace.Sample:
		if unit == "" {
			unit = stat.Unit()
		}
		current = rec.LastValue(stat)
		lo = rec.PeriodMin(stat, numFrames)
		hi = rec.PeriodMax(stat, numFrames)
		mean = rec.PeriodMean(stat, numFrames)
		rapidChanges = countRapidChanges(rec, stat, lastValueOf, RapidChangeWindow, b.cfg.RapidChangeThreshold)

		if float64(rapidChanges)/RapidChangeWindow.Seconds() > MaxRapidChangesPerSec {
			display = mean
		} else {
			display = current
			// keep fast-changing values responsive: bypass the refresh cap
			b.lastDisplay = current
		}
	}

	g := b.layout()

	curMax := b.curMax.Update(b.maxBar, elapsed)
	curMin := b.curMin.Update(b.minBar, elapsed)

	// rate-limited value readout
	var shown float64
	if now.Sub(b.lastRefresh) > b.cfg.RefreshInterval {
		b.lastRefresh = now
		b.lastDisplay = display
		shown = display
	} else {
		shown = b.lastDisplay
	}
	fr.Text(b.valueAnchorX(g), 0, b.formatValue(shown, unit), scene.AlignRight, true)

	if !b.showBar {
		return fr
	}

	var valueScale float64
	if curMax != curMin {
		valueScale = float64(g.axisSpan(b.cfg.Orientation)) / (curMax - curMin)
	}

	b.autoScale(lo, hi, curMin, curMax)
	b.emitTicks(&fr, g, curMin, curMax, valueScale)

	fr.Fill(g.barX, g.barY, g.barW, g.barH, scene.PaintBackground)

	if math.IsNaN(display) || rec.NumPeriods() == 0 {
		return fr
	}

	if !math.IsNaN(lo) && !math.IsNaN(hi) {
		b.emitSpan(&fr, g, curMin, valueScale, lo, hi, scene.PaintRange)
	}

	if b.showHistory {
		b.emitHistory(&fr, g, rec, stat, kind, numFrames, curMin, valueScale)
	} else if !math.IsNaN(current) {
		b.emitMarker(&fr, g, curMin, valueScale, current, scene.PaintCurrent)
	}
	if !math.IsNaN(mean) {
		b.emitMarker(&fr, g, curMin, valueScale, mean, scene.PaintMean)
	}
	return fr
}

// autoScale widens the target bounds when observed data escapes the
// smoothed range, snapping them to natural magnitudes.
func (b *Bar) autoScale(lo, hi, curMin, curMax float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	if (b.cfg.AutoScaleMax && hi >= curMax) || (b.cfg.AutoScaleMin && lo <= curMin) {
		rangeMin, rangeMax := b.minBar, b.maxBar
		if b.cfg.AutoScaleMin {
			rangeMin = math.Min(b.minBar, lo)
		}
		if b.cfg.AutoScaleMax {
			rangeMax = math.Max(b.maxBar, hi)
		}
		newMin, newMax, tick := scale.AutoScaleRange(rangeMin, rangeMax)
		if b.cfg.AutoScaleMin {
			b.minBar = newMin
		}
		if b.cfg.AutoScaleMax {
			b.maxBar = newMax
		}
		if b.cfg.AutoScaleMin && b.cfg.AutoScaleMax {
			b.tickValue = tick
		} else {
			b.tickValue = scale.TickValue(b.minBar, b.maxBar)
		}
	}
}

// axisCell maps a value to its cell offset along the value axis.
func axisCell(v, curMin, valueScale float64) int {
	return int(math.Floor((v - curMin) * valueScale))
}

func (b *Bar) valueAnchorX(g geometry) int {
	if b.cfg.Orientation == Horizontal {
		return g.barX + g.barW - 1
	}
	return b.width - 1
}

// emitTicks draws tick lines and labels. Ticks count from the target
// minimum so they always hit zero and don't drift while the bounds
// animate. One tick past the smoothed maximum is drawn so its label stays
// partially visible.
func (b *Bar) emitTicks(fr *scene.Frame, g geometry, curMin, curMax, valueScale float64) {
	if b.tickValue <= 0 || valueScale <= 0 {
		return
	}

	minTickSpacing, minLabelSpacing := 4, 8
	if b.cfg.Orientation == Horizontal {
		minTickSpacing, minLabelSpacing = 2, 3
	}

	start := 0.0
	if curMin < 0 {
		start = math.Ceil(-curMin/b.tickValue) * -b.tickValue
	}

	lastTick, lastLabel := 0, 0
	for tv := start; ; tv += b.tickValue {
		pos := axisCell(tv, curMin, valueScale)
		if pos-lastTick < minTickSpacing {
			if tv > curMax {
				break
			}
			continue
		}
		lastTick = pos

		labeled := pos-lastLabel > minLabelSpacing
		if labeled {
			lastLabel = pos
		}
		b.emitTick(fr, g, pos, tv, labeled)

		if tv > curMax {
			break
		}
	}
}

func (b *Bar) emitTick(fr *scene.Frame, g geometry, pos int, tv float64, labeled bool) {
	paint := scene.PaintTickFaint
	if labeled {
		paint = scene.PaintTick
	}
	if b.cfg.Orientation == Horizontal {
		y := g.barY + g.barH - 1 - pos
		fr.Fill(g.barX, y, g.barW, 1, paint)
		if labeled {
			fr.Text(g.barX+g.barW, y, b.formatTick(tv), scene.AlignLeft, true)
		}
		return
	}
	x := g.barX + pos
	fr.Fill(x, g.barY, 1, g.barH, paint)
	if labeled {
		fr.Text(x-1, b.height-1, b.formatTick(tv), scene.AlignRight, true)
	}
}

// emitSpan fills the band between two values across the bar.
func (b *Bar) emitSpan(fr *scene.Frame, g geometry, curMin, valueScale, lo, hi float64, paint scene.Paint) {
	begin := axisCell(lo, curMin, valueScale)
	if begin < 0 {
		begin = 0
	}
	end := axisCell(hi, curMin, valueScale)
	if end < begin {
		return
	}
	if b.cfg.Orientation == Horizontal {
		top := g.barY + g.barH - 1 - end
		fr.Fill(g.barX, top, g.barW, end-begin+1, paint)
		return
	}
	fr.Fill(g.barX+begin, g.barY, end-begin+1, g.barH, paint)
}

// emitMarker draws a one-cell-thick line across the bar at a value.
func (b *Bar) emitMarker(fr *scene.Frame, g geometry, curMin, valueScale, v float64, paint scene.Paint) {
	pos := axisCell(v, curMin, valueScale)
	if b.cfg.Orientation == Horizontal {
		fr.Fill(g.barX, g.barY+g.barH-1-pos, g.barW, 1, paint)
		return
	}
	fr.Fill(g.barX+pos, g.barY, 1, g.barH, paint)
}

// emitHistory draws one mark per recorded period, newest at the scroll
// edge. Periods without samples leave a gap.
func (b *Bar) emitHistory(fr *scene.Frame, g geometry, rec *trace.Recorder, stat *trace.Stat, kind trace.Kind, numFrames int, curMin, valueScale float64) {
	numValues := rec.NumPeriods() - 1
	maxFrame := numFrames
	if numValues < maxFrame {
		maxFrame = numValues
	}
	span := g.scrollSpan(b.cfg.Orientation)

	for i := 1; i <= maxFrame; i++ {
		offset := int(float64(i) / float64(numFrames) * float64(span))
		p := rec.Prev(i)

		var v float64
		if kind == trace.Counter {
			v = p.PerSec(stat)
		} else {
			v = p.Mean(stat)
		}
		if p.SampleCount(stat) == 0 || math.IsNaN(v) {
			continue
		}

		pos := axisCell(v, curMin, valueScale)
		if b.cfg.Orientation == Horizontal {
			fr.Fill(g.barX+g.barW-1-offset, g.barY+g.barH-1-pos, 1, 1, scene.PaintHistory)
		} else {
			fr.Fill(g.barX+pos, g.barY+g.barH-1-offset, 1, 1, scene.PaintHistory)
		}
	}
}

func (b *Bar) formatValue(v float64, unit string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	s := b.formatTick(v)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// formatTick renders a number with the configured decimals, dropping them
// entirely for whole values.
func (b *Bar) formatTick(v float64) string {
	digits := b.cfg.DecimalDigits
	if scale.ApproxEqual(math.Trunc(v), v) {
		digits = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

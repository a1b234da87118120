package statbar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/statbar/pkg/scene"
	"github.com/dkoosis/statbar/pkg/trace"
)

func labelTexts(fr scene.Frame) []string {
	texts := make([]string, 0, len(fr.Labels))
	for _, l := range fr.Labels {
		texts = append(texts, l.Text)
	}
	return texts
}

func hasLabel(fr scene.Frame, substr string) bool {
	for _, l := range fr.Labels {
		if strings.Contains(l.Text, substr) {
			return true
		}
	}
	return false
}

func newTestBar(stat string) *Bar {
	b := New(NewConfig("Ping", stat))
	b.Resize(40, 8)
	return b
}

func TestFrame_UnboundStatShowsLabelOnly(t *testing.T) {
	rec := trace.NewRecorder(8)
	b := newTestBar("not registered")

	fr := b.Frame(t0, rec)

	require.Len(t, fr.Labels, 1, "labels: %v", labelTexts(fr))
	assert.Equal(t, "Ping", fr.Labels[0].Text)
	assert.Empty(t, fr.Rects, "unbound stat must not draw a bar")
}

func TestFrame_NaNDisplaysAsNA(t *testing.T) {
	rec := trace.NewRecorder(8)
	rec.RegisterEvent("ping", "ms", "")
	b := newTestBar("ping")

	// Registered but nothing recorded: the mean is undefined.
	fr := b.Frame(t0, rec)

	assert.True(t, hasLabel(fr, "n/a"), "labels: %v", labelTexts(fr))
}

func TestFrame_SampleShowsCurrentWhenSteady(t *testing.T) {
	rec := trace.NewRecorder(16)
	stat := rec.RegisterSample("ping", "ms", "")
	recordSeries(rec, stat, 100*time.Millisecond, 1, 1, 1, 2, 2, 5)

	b := newTestBar("ping")
	fr := b.Frame(t0.Add(time.Second), rec)

	// 2 rapid changes over the 1s window is under the 10/s limit, so the
	// instantaneous value wins over the mean (2).
	assert.True(t, hasLabel(fr, "5 ms"), "labels: %v", labelTexts(fr))
}

func TestFrame_SampleFallsBackToMeanWhenJittery(t *testing.T) {
	rec := trace.NewRecorder(64)
	stat := rec.RegisterSample("ping", "ms", "")
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i % 2)
	}
	recordSeries(rec, stat, 40*time.Millisecond, values...)

	b := newTestBar("ping")
	fr := b.Frame(t0.Add(2*time.Second), rec)

	assert.True(t, hasLabel(fr, "0.500"), "want the mean of the alternating series, labels: %v", labelTexts(fr))
}

func TestFrame_RefreshCapHoldsValueText(t *testing.T) {
	rec := trace.NewRecorder(16)
	stat := rec.RegisterEvent("ping", "ms", "")

	rec.NextPeriod(t0)
	rec.Record(stat, 10)
	rec.NextPeriod(t0.Add(100 * time.Millisecond))

	b := newTestBar("ping")
	now := t0.Add(200 * time.Millisecond)
	fr := b.Frame(now, rec)
	require.True(t, hasLabel(fr, "10 ms"), "labels: %v", labelTexts(fr))

	// The window mean moves to 15, but the readout is rate limited.
	rec.Record(stat, 20)
	rec.NextPeriod(t0.Add(300 * time.Millisecond))

	fr = b.Frame(now.Add(100*time.Millisecond), rec)
	assert.True(t, hasLabel(fr, "10 ms"), "within the cap, labels: %v", labelTexts(fr))

	fr = b.Frame(now.Add(400*time.Millisecond), rec)
	assert.True(t, hasLabel(fr, "15 ms"), "after the cap, labels: %v", labelTexts(fr))
}

func TestFrame_AutoScaleSnapsBounds(t *testing.T) {
	rec := trace.NewRecorder(16)
	stat := rec.RegisterSample("load", "", "")
	recordSeries(rec, stat, 100*time.Millisecond, -3, 17)

	b := newTestBar("load")
	b.Frame(t0.Add(time.Second), rec)

	gotMin, gotMax := b.Range()
	assert.Equal(t, -10.0, gotMin)
	assert.Equal(t, 20.0, gotMax)
	assert.Equal(t, 10.0, b.TickSpacing())
}

func TestFrame_HistoryMarksBoundedByPeriods(t *testing.T) {
	rec := trace.NewRecorder(32)
	stat := rec.RegisterSample("load", "", "")
	recordSeries(rec, stat, 100*time.Millisecond, 1, 2, 3, 4, 5)

	b := New(NewConfig("Load", "load"))
	b.Resize(40, 10)
	b.ToggleDisplay() // bar -> bar+history
	require.True(t, b.ShowingHistory())

	fr := b.Frame(t0.Add(time.Second), rec)

	marks := 0
	for _, r := range fr.Rects {
		if r.Paint == scene.PaintHistory {
			marks++
		}
	}
	assert.LessOrEqual(t, marks, rec.NumPeriods())
	assert.Greater(t, marks, 0)
}

func TestToggleDisplay_VerticalCycle(t *testing.T) {
	b := New(NewConfig("x", "x"))
	require.True(t, b.ShowingBar())
	require.False(t, b.ShowingHistory())

	b.ToggleDisplay()
	assert.True(t, b.ShowingBar())
	assert.True(t, b.ShowingHistory())

	b.ToggleDisplay()
	assert.False(t, b.ShowingBar())
	assert.False(t, b.ShowingHistory())

	b.ToggleDisplay()
	assert.True(t, b.ShowingBar())
	assert.False(t, b.ShowingHistory())
}

func TestToggleDisplay_HorizontalPairsHistory(t *testing.T) {
	cfg := NewConfig("x", "x")
	cfg.Orientation = Horizontal
	cfg.ShowBar = false
	b := New(cfg)

	b.ToggleDisplay()
	assert.True(t, b.ShowingBar())
	assert.True(t, b.ShowingHistory())

	b.ToggleDisplay()
	assert.False(t, b.ShowingBar())
	assert.False(t, b.ShowingHistory())
}

func TestRequiredHeight(t *testing.T) {
	cfg := NewConfig("x", "x")
	cfg.MaxHeight = 15
	b := New(cfg)

	assert.Equal(t, 5, b.RequiredHeight())
	b.ToggleDisplay()
	assert.Equal(t, 15, b.RequiredHeight())
	b.ToggleDisplay()
	assert.Equal(t, 1, b.RequiredHeight())
}

func TestSetRange_RecomputesTick(t *testing.T) {
	b := New(NewConfig("x", "x"))
	b.SetRange(10, 0)

	gotMin, gotMax := b.Range()
	assert.Equal(t, 0.0, gotMin, "range must be normalized")
	assert.Equal(t, 10.0, gotMax)
	assert.InDelta(t, 2.0, b.TickSpacing(), 1e-9)
}

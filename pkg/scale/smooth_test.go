package scale

import (
	"math"
	"testing"
	"time"
)

func TestSmoother_ConvergesTowardTarget(t *testing.T) {
	s := NewSmoother(100 * time.Millisecond)
	s.Set(0)
	prev := 0.0
	for i := 0; i < 20; i++ {
		v := s.Update(10, 50*time.Millisecond)
		if v <= prev {
			t.Fatalf("step %d: value %v did not move toward target", i, v)
		}
		prev = v
	}
	if math.Abs(prev-10) > 0.01 {
		t.Errorf("after 1s of updates, value = %v, want ~10", prev)
	}
}

func TestSmoother_FrameRateIndependent(t *testing.T) {
	one := NewSmoother(200 * time.Millisecond)
	two := NewSmoother(200 * time.Millisecond)

	one.Update(100, 200*time.Millisecond)
	two.Update(100, 100*time.Millisecond)
	two.Update(100, 100*time.Millisecond)

	if math.Abs(one.Value()-two.Value()) > 1e-9 {
		t.Errorf("one 200ms step = %v, two 100ms steps = %v, want equal", one.Value(), two.Value())
	}
}

func TestSmoother_ZeroElapsedIsNoOp(t *testing.T) {
	s := NewSmoother(0)
	s.Set(5)
	if got := s.Update(10, 0); got != 5 {
		t.Errorf("Update with zero elapsed = %v, want 5", got)
	}
}

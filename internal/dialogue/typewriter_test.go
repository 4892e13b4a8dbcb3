package dialogue

import (
	"math"
	"testing"
)

func TestTypeWriterDefaults(t *testing.T) {
	t.Parallel()

	tw := NewTypeWriter()
	if !tw.Active() {
		t.Error("NewTypeWriter should be active")
	}
	if tw.Speed() != DefaultTypeWriterSpeed {
		t.Errorf("speed = %v, want %v", tw.Speed(), DefaultTypeWriterSpeed)
	}
	if tw.Elapsed() != 0 {
		t.Errorf("elapsed = %v, want 0", tw.Elapsed())
	}

	off := disabledTypeWriter()
	if off.Active() {
		t.Error("disabled typewriter should not be active")
	}
	if !off.Finished() {
		t.Error("inactive typewriter should count as finished")
	}
}

func TestTypeWriterAdvance(t *testing.T) {
	t.Parallel()

	tw := NewTypeWriter()
	tw.Advance(0.1)
	if tw.Elapsed() != 0.05 {
		t.Errorf("elapsed = %v, want 0.05", tw.Elapsed())
	}
}

func TestTypeWriterAdvanceSaturates(t *testing.T) {
	t.Parallel()

	for _, speed := range []float64{0.1, 0.25, 0.5, 0.7, 1} {
		for _, dt := range []float64{0.016, 0.1, 0.5} {
			tw := NewTypeWriter().WithSpeed(speed)
			steps := int(math.Ceil(1/(speed*dt))) + 1
			for i := 0; i < steps; i++ {
				tw.Advance(dt)
				if tw.Elapsed() > 1 {
					t.Fatalf("speed %v dt %v: elapsed %v exceeds 1", speed, dt, tw.Elapsed())
				}
			}
			if tw.Elapsed() != 1 {
				t.Errorf("speed %v dt %v: elapsed = %v after %d steps, want 1", speed, dt, tw.Elapsed(), steps)
			}
			if !tw.Finished() {
				t.Errorf("speed %v dt %v: not finished", speed, dt)
			}
		}
	}
}

func TestTypeWriterMonotonic(t *testing.T) {
	t.Parallel()

	tw := NewTypeWriter().WithSpeed(0.3)
	prev := tw.Elapsed()
	for i := 0; i < 100; i++ {
		tw.Advance(0.05)
		if tw.Elapsed() < prev {
			t.Fatalf("elapsed went backwards: %v -> %v", prev, tw.Elapsed())
		}
		prev = tw.Elapsed()
	}
}

func TestTypeWriterFinishThenAdvance(t *testing.T) {
	t.Parallel()

	tw := NewTypeWriter()
	tw.Finish()
	for _, dt := range []float64{0, 0.5, 10} {
		tw.Advance(dt)
		if tw.Elapsed() != 1 {
			t.Errorf("after Advance(%v): elapsed = %v, want 1", dt, tw.Elapsed())
		}
	}

	tw.Reset()
	if tw.Elapsed() != 0 {
		t.Errorf("after Reset: elapsed = %v, want 0", tw.Elapsed())
	}
	if tw.Finished() {
		t.Error("active typewriter at 0 should not be finished")
	}
}

func TestTypeWriterClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{2.5, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, tt := range tests {
		tw := NewTypeWriter().WithSpeed(tt.in).WithElapsed(tt.in)
		if tw.Speed() != tt.want {
			t.Errorf("WithSpeed(%v) = %v, want %v", tt.in, tw.Speed(), tt.want)
		}
		if tw.Elapsed() != tt.want {
			t.Errorf("WithElapsed(%v) = %v, want %v", tt.in, tw.Elapsed(), tt.want)
		}
	}
}

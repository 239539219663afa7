package metrics

import (
	"math"
	"testing"

	"github.com/pwasik/fuzzdrive/internal/drive"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	if m.Value() != 0 {
		t.Errorf("empty value %g, want 0", m.Value())
	}

	for _, th := range []float64{40, 60, 50} {
		m.Observe(drive.Sample{Throttle: th})
	}
	if m.Value() != 50 {
		t.Errorf("mean throttle %g, want 50", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset %g, want 0", m.Value())
	}
}

func TestOvershoot(t *testing.T) {
	m := NewOvershoot()

	speeds := []float64{18, 20.5, 23, 21, 19}
	for _, v := range speeds {
		m.Observe(drive.Sample{Speed: v, Target: 20})
	}
	if m.Value() != 3 {
		t.Errorf("overshoot %g, want 3", m.Value())
	}

	m.Reset()
	m.Observe(drive.Sample{Speed: 15, Target: 20})
	if m.Value() != 0 {
		t.Errorf("overshoot %g for undershoot-only run, want 0", m.Value())
	}
}

func TestSettlingTime(t *testing.T) {
	m := NewSettlingTime(2.0)

	// enters the band at t=3, leaves at t=5, re-enters at t=7
	samples := []drive.Sample{
		{Time: 1, Speed: 10, Target: 20},
		{Time: 2, Speed: 15, Target: 20},
		{Time: 3, Speed: 19, Target: 20},
		{Time: 4, Speed: 21, Target: 20},
		{Time: 5, Speed: 24, Target: 20},
		{Time: 6, Speed: 23, Target: 20},
		{Time: 7, Speed: 21, Target: 20},
		{Time: 8, Speed: 20, Target: 20},
	}
	for _, s := range samples {
		m.Observe(s)
	}
	if m.Value() != 7 {
		t.Errorf("settling time %g, want 7", m.Value())
	}
}

func TestSettlingTimeNeverSettled(t *testing.T) {
	m := NewSettlingTime(2.0)

	m.Observe(drive.Sample{Time: 1, Speed: 5, Target: 20})
	m.Observe(drive.Sample{Time: 2, Speed: 6, Target: 20})

	if !math.IsNaN(m.Value()) {
		t.Errorf("settling time %g, want NaN", m.Value())
	}

	empty := NewSettlingTime(2.0)
	if !math.IsNaN(empty.Value()) {
		t.Errorf("settling time %g for empty run, want NaN", empty.Value())
	}
}

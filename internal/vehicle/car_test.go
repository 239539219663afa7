package vehicle

import (
	"errors"
	"math"
	"testing"
)

func TestUpdateRejectsBadTimestep(t *testing.T) {
	c := New()

	for _, dt := range []float64{0, -0.1} {
		before := c.State()
		_, err := c.Update(50, dt)
		if !errors.Is(err, ErrInvalidTimestep) {
			t.Errorf("dt=%g: got %v, want ErrInvalidTimestep", dt, err)
		}
		if c.State() != before {
			t.Errorf("dt=%g: state mutated on error", dt)
		}
	}
}

func TestUpdateClampsThrottle(t *testing.T) {
	a := New()
	b := New()

	sa, err := a.Update(150, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	sb, err := b.Update(100, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if sa != sb {
		t.Errorf("throttle 150 gave %+v, throttle 100 gave %+v", sa, sb)
	}

	sa, _ = a.Update(-20, 0.1)
	sb, _ = b.Update(0, 0.1)
	if sa.Acceleration != sb.Acceleration {
		t.Errorf("throttle -20 accel %g, throttle 0 accel %g", sa.Acceleration, sb.Acceleration)
	}
}

func TestSteadyStateSpeed(t *testing.T) {
	c := New()

	const throttle = 50.0
	want := c.MaxSpeed(throttle)

	var st State
	var err error
	for i := 0; i < 2000; i++ {
		st, err = c.Update(throttle, 0.1)
		if err != nil {
			t.Fatal(err)
		}
	}

	if math.Abs(st.Speed-want) > 0.05 {
		t.Errorf("steady speed %g, want ~%g", st.Speed, want)
	}
	if st.Acceleration > 0.01 {
		t.Errorf("acceleration %g at steady state, want ~0", st.Acceleration)
	}
}

func TestResetIdempotent(t *testing.T) {
	c := New()
	for i := 0; i < 50; i++ {
		if _, err := c.Update(80, 0.1); err != nil {
			t.Fatal(err)
		}
	}
	if c.State() == (State{}) {
		t.Fatal("expected non-zero state after updates")
	}

	c.Reset()
	if c.State() != (State{}) {
		t.Errorf("state after reset: %+v, want zero", c.State())
	}

	c.Reset()
	if c.State() != (State{}) {
		t.Errorf("state after double reset: %+v, want zero", c.State())
	}
}

func TestSpeedStaysNonNegative(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		st, err := c.Update(0, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		if st.Speed < 0 {
			t.Fatalf("speed went negative: %g", st.Speed)
		}
	}
}

func TestPositionAccumulates(t *testing.T) {
	c := New()
	prev := 0.0
	for i := 0; i < 100; i++ {
		st, err := c.Update(60, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		if st.Position < prev {
			t.Fatalf("position decreased: %g -> %g", prev, st.Position)
		}
		prev = st.Position
	}
	if prev == 0 {
		t.Error("position never advanced")
	}
}

func TestNewWithParamsValidation(t *testing.T) {
	if _, err := NewWithParams(0, 4000, 100, State{}); err == nil {
		t.Error("zero mass accepted")
	}
	if _, err := NewWithParams(400, -1, 100, State{}); err == nil {
		t.Error("negative drive force accepted")
	}
	if _, err := NewWithParams(400, 4000, -1, State{}); err == nil {
		t.Error("negative drag accepted")
	}

	c, err := NewWithParams(400, 4000, 100, State{Speed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if c.State().Speed != 5 {
		t.Errorf("initial speed %g, want 5", c.State().Speed)
	}
}

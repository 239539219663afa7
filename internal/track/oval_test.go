package track

import (
	"math"
	"testing"
)

func TestPerimeterOfCircle(t *testing.T) {
	o, err := NewOvalWithParams(20, 20, 10, 20)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 * math.Pi * 10
	if got := o.Perimeter(); math.Abs(got-want) > 0.01 {
		t.Errorf("perimeter %g, want ~%g", got, want)
	}
}

func TestPositionWrapsAroundPerimeter(t *testing.T) {
	o := NewOval()
	p := o.Perimeter()

	x1, y1, h1 := o.Position(30)
	x2, y2, h2 := o.Position(30 + p)

	if math.Abs(x1-x2) > 1e-9 || math.Abs(y1-y2) > 1e-9 || math.Abs(h1-h2) > 1e-9 {
		t.Errorf("position did not wrap: (%g,%g,%g) vs (%g,%g,%g)", x1, y1, h1, x2, y2, h2)
	}

	xn, yn, _ := o.Position(-10)
	xp, yp, _ := o.Position(p - 10)
	if math.Abs(xn-xp) > 1e-9 || math.Abs(yn-yp) > 1e-9 {
		t.Errorf("negative distance did not wrap: (%g,%g) vs (%g,%g)", xn, yn, xp, yp)
	}
}

func TestTargetSpeedBounds(t *testing.T) {
	o := NewOval()
	p := o.Perimeter()

	for d := 0.0; d < p; d += p / 200 {
		v := o.TargetSpeed(d)
		if v < o.CornerSpeed-1e-9 || v > o.StraightSpeed+1e-9 {
			t.Errorf("target %g at distance %g outside [%g, %g]", v, d, o.CornerSpeed, o.StraightSpeed)
		}
	}
}

func TestTargetSpeedProfile(t *testing.T) {
	o := NewOval()
	p := o.Perimeter()

	// distance 0 sits at the end of the major axis: sharpest corner
	if v := o.TargetSpeed(0); math.Abs(v-o.CornerSpeed) > 1e-9 {
		t.Errorf("corner target %g, want %g", v, o.CornerSpeed)
	}

	// a quarter lap later the car is mid-straight
	if v := o.TargetSpeed(p / 4); math.Abs(v-o.StraightSpeed) > 1e-9 {
		t.Errorf("straight target %g, want %g", v, o.StraightSpeed)
	}
}

func TestNewOvalWithParamsValidation(t *testing.T) {
	if _, err := NewOvalWithParams(0, 60, 15, 30); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := NewOvalWithParams(100, 60, 30, 15); err == nil {
		t.Error("corner speed above straight speed accepted")
	}
	if _, err := NewOvalWithParams(100, 60, -5, 30); err == nil {
		t.Error("negative corner speed accepted")
	}
}

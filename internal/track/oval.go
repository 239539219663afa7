// Package track provides the oval circuit geometry: mapping distance
// travelled to a position on the ellipse and to a curvature-dependent
// target speed (slower in the corners, faster on the straights).
package track

import (
	"fmt"
	"math"
)

// Oval is an elliptical circuit described by its bounding box.
type Oval struct {
	Width  float64 // m
	Height float64 // m

	CornerSpeed   float64 // target in the tightest section
	StraightSpeed float64 // target on the straights
}

// Default track dimensions and speed profile.
const (
	DefaultWidth         = 100.0
	DefaultHeight        = 60.0
	DefaultCornerSpeed   = 15.0
	DefaultStraightSpeed = 30.0
)

// NewOval returns the default circuit.
func NewOval() *Oval {
	return &Oval{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		CornerSpeed:   DefaultCornerSpeed,
		StraightSpeed: DefaultStraightSpeed,
	}
}

// NewOvalWithParams returns a circuit with explicit geometry and speeds.
func NewOvalWithParams(width, height, cornerSpeed, straightSpeed float64) (*Oval, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("track: dimensions must be positive, got %gx%g", width, height)
	}
	if cornerSpeed < 0 || straightSpeed < cornerSpeed {
		return nil, fmt.Errorf("track: need 0 <= corner speed <= straight speed, got %g and %g", cornerSpeed, straightSpeed)
	}
	return &Oval{Width: width, Height: height, CornerSpeed: cornerSpeed, StraightSpeed: straightSpeed}, nil
}

func (o *Oval) semiAxes() (a, b float64) {
	return o.Width / 2, o.Height / 2
}

// Perimeter approximates the ellipse circumference (Ramanujan).
func (o *Oval) Perimeter() float64 {
	a, b := o.semiAxes()
	h := (a - b) * (a - b) / ((a + b) * (a + b))
	return math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
}

// Position maps distance travelled to a point on the circuit and the
// heading tangent to it. Distance wraps around the perimeter.
func (o *Oval) Position(distance float64) (x, y, heading float64) {
	a, b := o.semiAxes()
	p := o.Perimeter()

	t := math.Mod(distance, p)
	if t < 0 {
		t += p
	}
	t = t / p * 2 * math.Pi

	x = a * math.Cos(t)
	y = b * math.Sin(t)
	heading = math.Atan2(-a*math.Sin(t), b*math.Cos(t))
	return x, y, heading
}

// TargetSpeed returns the target for the given distance along the
// circuit, interpolating between the corner and straight speeds. The
// sharpest curvature sits at the ends of the major axis (|x| = a), so the
// target bottoms out there and peaks mid-straight.
func (o *Oval) TargetSpeed(distance float64) float64 {
	a, _ := o.semiAxes()
	x, _, _ := o.Position(distance)

	straightness := 1 - math.Abs(x)/a
	return o.CornerSpeed + (o.StraightSpeed-o.CornerSpeed)*straightness
}

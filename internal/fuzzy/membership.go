package fuzzy

import "fmt"

// Shape is a piecewise-linear membership function defined by control
// points: three points form a triangle, four a trapezoid. Points must be
// non-decreasing. Membership is 0 outside [first, last].
type Shape struct {
	Points []float64
}

// Tri returns a triangular shape with feet at a and c and peak at b.
func Tri(a, b, c float64) Shape {
	return Shape{Points: []float64{a, b, c}}
}

// Trap returns a trapezoidal shape with feet at a and d and a plateau
// between b and c.
func Trap(a, b, c, d float64) Shape {
	return Shape{Points: []float64{a, b, c, d}}
}

func (s Shape) corners() (a, b, c, d float64) {
	p := s.Points
	if len(p) == 3 {
		return p[0], p[1], p[1], p[2]
	}
	return p[0], p[1], p[2], p[3]
}

// At evaluates the membership degree at x. Degenerate segments (shared
// control points) saturate: a shape like Trap(0,0,10,20) is 1 at x=0.
func (s Shape) At(x float64) float64 {
	a, b, c, d := s.corners()
	switch {
	case x < a || x > d:
		return 0
	case x < b:
		return (x - a) / (b - a)
	case x <= c:
		return 1
	case x < d:
		return (d - x) / (d - c)
	default:
		return 0
	}
}

func (s Shape) validate() error {
	if n := len(s.Points); n != 3 && n != 4 {
		return fmt.Errorf("%w: need 3 or 4 points, got %d", ErrBadShape, n)
	}
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i] < s.Points[i-1] {
			return fmt.Errorf("%w: points %v are not non-decreasing", ErrBadShape, s.Points)
		}
	}
	return nil
}

package metrics

import "github.com/pwasik/fuzzdrive/internal/drive"

// Overshoot reports the largest excess of speed above the target seen
// during a run, zero if the target was never crossed.
type Overshoot struct {
	max float64
}

func NewOvershoot() *Overshoot {
	return &Overshoot{}
}

func (o *Overshoot) Name() string {
	return "overshoot"
}

func (o *Overshoot) Observe(s drive.Sample) {
	if over := s.Speed - s.Target; over > o.max {
		o.max = over
	}
}

func (o *Overshoot) Value() float64 {
	return o.max
}

func (o *Overshoot) Reset() {
	o.max = 0
}

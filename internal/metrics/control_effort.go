// Package metrics provides run-level scalar metrics for closed-loop
// simulations: control effort, overshoot, and settling time.
package metrics

import (
	"math"

	"github.com/pwasik/fuzzdrive/internal/drive"
)

// ControlEffort reports the mean absolute throttle over a run.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string {
	return "control_effort"
}

func (c *ControlEffort) Observe(s drive.Sample) {
	c.sum += math.Abs(s.Throttle)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

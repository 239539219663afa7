package fuzzy

import (
	"fmt"
	"math"
)

// Config holds the full controller definition: the two input variables,
// the output variable, the rule base, and the defuzzification step.
type Config struct {
	SpeedError Variable
	Accel      Variable
	Throttle   Variable
	Rules      []Rule
	Resolution float64
}

// Controller evaluates the rule base over crisp inputs. It holds no
// mutable state; identical inputs always produce identical outputs.
type Controller struct {
	cfg Config
}

// New validates cfg and returns a controller. A rule referencing an
// undefined label, malformed control points, an empty rule base, or a
// non-positive resolution are all fatal.
func New(cfg Config) (*Controller, error) {
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadResolution, cfg.Resolution)
	}
	for _, v := range []Variable{cfg.SpeedError, cfg.Accel, cfg.Throttle} {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	if len(cfg.Rules) == 0 {
		return nil, ErrNoRules
	}
	for i, r := range cfg.Rules {
		if _, ok := cfg.SpeedError.set(r.Error); !ok {
			return nil, fmt.Errorf("%w: rule %d: %s %q", ErrUnknownLabel, i, cfg.SpeedError.Name, r.Error)
		}
		if r.Accel != "" {
			if _, ok := cfg.Accel.set(r.Accel); !ok {
				return nil, fmt.Errorf("%w: rule %d: %s %q", ErrUnknownLabel, i, cfg.Accel.Name, r.Accel)
			}
		}
		if _, ok := cfg.Throttle.set(r.Throttle); !ok {
			return nil, fmt.Errorf("%w: rule %d: %s %q", ErrUnknownLabel, i, cfg.Throttle.Name, r.Throttle)
		}
	}
	return &Controller{cfg: cfg}, nil
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Evaluation is the detailed result of one inference pass.
type Evaluation struct {
	SpeedError   float64 // inputs after clamping
	Accel        float64
	ErrorDegrees map[string]float64
	AccelDegrees map[string]float64
	Strengths    []float64 // firing strength per rule, rule-base order
	Aggregate    map[string]float64
	Fired        bool // false when no rule fired and the zero fallback applied
	Throttle     float64
}

// Compute maps (speedErr, accel) to a throttle command in the output
// range. Out-of-range inputs are clamped to the nearest boundary.
func (c *Controller) Compute(speedErr, accel float64) float64 {
	return c.Evaluate(speedErr, accel).Throttle
}

// Evaluate runs the full inference pipeline and reports the intermediate
// degrees alongside the crisp output.
func (c *Controller) Evaluate(speedErr, accel float64) Evaluation {
	ev := Evaluation{
		SpeedError: c.cfg.SpeedError.Clamp(speedErr),
		Accel:      c.cfg.Accel.Clamp(accel),
		Strengths:  make([]float64, len(c.cfg.Rules)),
		Aggregate:  make(map[string]float64, len(c.cfg.Throttle.Sets)),
	}
	ev.ErrorDegrees = c.cfg.SpeedError.Fuzzify(ev.SpeedError)
	ev.AccelDegrees = c.cfg.Accel.Fuzzify(ev.Accel)

	for i, r := range c.cfg.Rules {
		strength := ev.ErrorDegrees[r.Error]
		if r.Accel != "" {
			strength = math.Min(strength, ev.AccelDegrees[r.Accel])
		}
		ev.Strengths[i] = strength
		if strength > ev.Aggregate[r.Throttle] {
			ev.Aggregate[r.Throttle] = strength
		}
	}

	ev.Throttle, ev.Fired = c.defuzzify(ev.Aggregate)
	return ev
}

// defuzzify computes the centroid of the aggregated output shape, sampled
// across the throttle axis at the configured resolution. Each active
// label's membership is clipped at its aggregated degree and the combined
// shape is the pointwise maximum. Returns (0, false) when nothing fired.
func (c *Controller) defuzzify(aggregate map[string]float64) (float64, bool) {
	type clipped struct {
		shape  Shape
		degree float64
	}
	active := make([]clipped, 0, len(aggregate))
	for _, s := range c.cfg.Throttle.Sets {
		if deg := aggregate[s.Label]; deg > 0 {
			active = append(active, clipped{shape: s.Shape, degree: deg})
		}
	}
	if len(active) == 0 {
		return 0, false
	}

	out := c.cfg.Throttle
	samples := int((out.Max-out.Min)/c.cfg.Resolution) + 1
	var num, den float64
	for i := 0; i < samples; i++ {
		x := out.Min + float64(i)*c.cfg.Resolution
		mu := 0.0
		for _, a := range active {
			m := math.Min(a.degree, a.shape.At(x))
			if m > mu {
				mu = m
			}
		}
		num += x * mu
		den += mu
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

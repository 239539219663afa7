package fuzzy

// DefaultResolution is the sampling step used for centroid
// defuzzification across the throttle axis.
const DefaultResolution = 0.5

// DefaultConfig returns the stock throttle controller definition: five
// speed-error labels, three acceleration labels, five throttle labels, and
// a rule base covering the input cross product. The control points are
// tunable defaults, not a contract.
func DefaultConfig() Config {
	return Config{
		SpeedError: Variable{
			Name: "speed_error",
			Min:  -30, Max: 30,
			Sets: []Set{
				{Label: "negative_large", Shape: Trap(-30, -30, -20, -10)},
				{Label: "negative_small", Shape: Tri(-15, -5, 0)},
				{Label: "zero", Shape: Tri(-5, 0, 5)},
				{Label: "positive_small", Shape: Tri(0, 5, 15)},
				{Label: "positive_large", Shape: Trap(10, 20, 30, 30)},
			},
		},
		Accel: Variable{
			Name: "acceleration",
			Min:  -10, Max: 10,
			Sets: []Set{
				{Label: "negative", Shape: Trap(-10, -10, -5, 0)},
				{Label: "zero", Shape: Tri(-3, 0, 3)},
				{Label: "positive", Shape: Trap(0, 5, 10, 10)},
			},
		},
		Throttle: Variable{
			Name: "throttle",
			Min:  0, Max: 100,
			Sets: []Set{
				{Label: "very_low", Shape: Trap(0, 0, 10, 20)},
				{Label: "low", Shape: Tri(10, 25, 40)},
				{Label: "medium", Shape: Tri(30, 50, 70)},
				{Label: "high", Shape: Tri(60, 75, 90)},
				{Label: "very_high", Shape: Trap(80, 90, 100, 100)},
			},
		},
		Rules: []Rule{
			// too fast: back off, harder the more we are still accelerating
			{Error: "negative_large", Throttle: "very_low"},
			{Error: "negative_small", Accel: "negative", Throttle: "very_low"},
			{Error: "negative_small", Accel: "zero", Throttle: "low"},
			{Error: "negative_small", Accel: "positive", Throttle: "medium"},
			// on target: hold
			{Error: "zero", Accel: "negative", Throttle: "low"},
			{Error: "zero", Accel: "zero", Throttle: "medium"},
			{Error: "zero", Accel: "positive", Throttle: "medium"},
			// too slow: feed in power unless already pulling
			{Error: "positive_small", Accel: "negative", Throttle: "medium"},
			{Error: "positive_small", Accel: "zero", Throttle: "high"},
			{Error: "positive_small", Accel: "positive", Throttle: "medium"},
			// far too slow: floor it
			{Error: "positive_large", Accel: "negative", Throttle: "very_high"},
			{Error: "positive_large", Accel: "zero", Throttle: "very_high"},
			{Error: "positive_large", Accel: "positive", Throttle: "very_high"},
		},
		Resolution: DefaultResolution,
	}
}

// Default returns a controller built from DefaultConfig. It panics only if
// the stock configuration is internally inconsistent, which is a bug.
func Default() *Controller {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}

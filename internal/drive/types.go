package drive

// Sample is the record of one simulation tick.
type Sample struct {
	Time         float64 `json:"time"`
	Position     float64 `json:"position"`
	Speed        float64 `json:"speed"`
	Acceleration float64 `json:"acceleration"`
	Target       float64 `json:"target"`
	SpeedError   float64 `json:"speed_error"`
	Throttle     float64 `json:"throttle"`
}

// ThrottleSource produces a throttle command from the current speed error
// and acceleration. The fuzzy controller is the usual source; Manual
// substitutes a fixed operator setting.
type ThrottleSource interface {
	Throttle(speedErr, accel float64) float64
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(s Sample)
}

// Config parameterizes a Run.
type Config struct {
	Dt       float64
	Duration float64
}

// Result holds the per-tick history and final metric values of a run.
type Result struct {
	Samples []Sample
	Metrics map[string]float64
}

// Manual is a fixed-throttle source set directly by the operator.
type Manual struct {
	Value float64
}

// NewManual returns a manual source at the given throttle percentage.
func NewManual(value float64) *Manual { return &Manual{Value: value} }

// Throttle returns the stored setting regardless of the inputs.
func (m *Manual) Throttle(speedErr, accel float64) float64 { return m.Value }

// Set updates the stored throttle setting.
func (m *Manual) Set(value float64) { m.Value = value }

// Package drive closes the loop between the fuzzy throttle controller and
// the vehicle dynamics: each tick computes the speed error against the
// target, asks the throttle source for a command, and advances the car by
// one integration step.
package drive

import (
	"context"
	"fmt"
	"math"

	"github.com/pwasik/fuzzdrive/internal/fuzzy"
	"github.com/pwasik/fuzzdrive/internal/vehicle"
)

// TargetFunc maps distance travelled to a target speed, letting a track
// profile drive the setpoint. A nil TargetFunc means a constant target.
type TargetFunc func(distance float64) float64

// Fuzzy adapts a fuzzy.Controller to the ThrottleSource interface.
type Fuzzy struct {
	Controller *fuzzy.Controller
}

// Throttle runs one inference pass over the inputs.
func (f Fuzzy) Throttle(speedErr, accel float64) float64 {
	return f.Controller.Compute(speedErr, accel)
}

// Loop owns a car and a throttle source and sequences their interaction.
// It is single-threaded; ticks are short, bounded, pure computations.
type Loop struct {
	source     ThrottleSource
	car        *vehicle.Car
	target     float64
	targetFunc TargetFunc
	t          float64
	metrics    []Metric
	observers  []Observer
}

// NewLoop returns a loop over the given source and car holding a constant
// target speed.
func NewLoop(source ThrottleSource, car *vehicle.Car, target float64) *Loop {
	return &Loop{source: source, car: car, target: target}
}

// SetTargetFunc installs a distance-dependent target profile.
func (l *Loop) SetTargetFunc(fn TargetFunc) { l.targetFunc = fn }

// SetTarget changes the constant target speed.
func (l *Loop) SetTarget(v float64) { l.target = v }

// Target returns the target speed at the car's current position.
func (l *Loop) Target() float64 { return l.targetAt(l.car.State().Position) }

// SetSource swaps the throttle source (e.g. fuzzy to manual).
func (l *Loop) SetSource(s ThrottleSource) { l.source = s }

// Car exposes the underlying vehicle.
func (l *Loop) Car() *vehicle.Car { return l.car }

// Time returns the simulated time since the last reset.
func (l *Loop) Time() float64 { return l.t }

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) targetAt(distance float64) float64 {
	if l.targetFunc != nil {
		return l.targetFunc(distance)
	}
	return l.target
}

// Step advances the simulation by one tick. The controller sees the speed
// error against the current target and the acceleration from the previous
// tick's update.
func (l *Loop) Step(dt float64) (Sample, error) {
	st := l.car.State()
	target := l.targetAt(st.Position)
	speedErr := target - st.Speed
	throttle := l.source.Throttle(speedErr, st.Acceleration)

	st, err := l.car.Update(throttle, dt)
	if err != nil {
		return Sample{}, err
	}
	l.t += dt

	s := Sample{
		Time:         l.t,
		Position:     st.Position,
		Speed:        st.Speed,
		Acceleration: st.Acceleration,
		Target:       target,
		SpeedError:   speedErr,
		Throttle:     throttle,
	}
	for _, m := range l.metrics {
		m.Observe(s)
	}
	for _, o := range l.observers {
		o.OnTick(s)
	}
	return s, nil
}

// Run executes the configured number of ticks, recording every sample.
func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Samples: make([]Sample, 0, steps),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s, err := l.Step(cfg.Dt)
		if err != nil {
			return result, err
		}
		result.Samples = append(result.Samples, s)
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Reset zeroes the car state, the clock, and all metrics.
func (l *Loop) Reset() {
	l.car.Reset()
	l.t = 0
	for _, m := range l.metrics {
		m.Reset()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("drive: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("drive: duration must be positive, got %g", cfg.Duration)
	}
	return nil
}

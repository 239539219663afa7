// Package vehicle models the longitudinal dynamics of a single car as a
// discrete-time point mass driven by a throttle percentage against linear
// drag. Integration is explicit first-order Euler at the caller's step.
package vehicle

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTimestep indicates a non-positive dt passed to Update.
var ErrInvalidTimestep = errors.New("vehicle: timestep must be positive")

// State is a read-only snapshot of the car's physical state.
type State struct {
	Position     float64
	Speed        float64
	Acceleration float64
}

// Car owns the mutable vehicle state. Parameters are fixed at
// construction; only Update and Reset mutate the state.
type Car struct {
	Mass          float64 // kg
	MaxDriveForce float64 // N at 100% throttle
	DragCoeff     float64 // N per unit speed

	state State
}

// Default parameters. Tuned so that v_max = 0.4*throttle: a medium
// throttle of 50% holds a steady speed of 20 and mass/drag gives a 4 s
// time constant.
const (
	DefaultMass          = 400.0
	DefaultMaxDriveForce = 4000.0
	DefaultDragCoeff     = 100.0
)

// New returns a car with the default parameters and zero state.
func New() *Car {
	return &Car{
		Mass:          DefaultMass,
		MaxDriveForce: DefaultMaxDriveForce,
		DragCoeff:     DefaultDragCoeff,
	}
}

// NewWithParams returns a car with explicit parameters and initial state.
func NewWithParams(mass, maxDriveForce, dragCoeff float64, initial State) (*Car, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("vehicle: mass must be positive, got %g", mass)
	}
	if maxDriveForce < 0 {
		return nil, fmt.Errorf("vehicle: max drive force must be non-negative, got %g", maxDriveForce)
	}
	if dragCoeff < 0 {
		return nil, fmt.Errorf("vehicle: drag coefficient must be non-negative, got %g", dragCoeff)
	}
	return &Car{
		Mass:          mass,
		MaxDriveForce: maxDriveForce,
		DragCoeff:     dragCoeff,
		state:         initial,
	}, nil
}

// State returns the current snapshot.
func (c *Car) State() State { return c.state }

// Reset returns the car to the zero state.
func (c *Car) Reset() { c.state = State{} }

// Update advances the state by one Euler step under the given throttle
// percentage. Throttle is clamped to [0, 100]; dt must be positive.
//
//	drive = throttle/100 * MaxDriveForce
//	drag  = DragCoeff * speed
//	accel = (drive - drag) / Mass
//
// Speed is held non-negative: with no reverse drive the only backward
// force is drag, which vanishes at rest, so the clamp only removes the
// Euler undershoot below zero.
func (c *Car) Update(throttle, dt float64) (State, error) {
	if dt <= 0 {
		return c.state, fmt.Errorf("%w: got %g", ErrInvalidTimestep, dt)
	}
	if throttle < 0 {
		throttle = 0
	} else if throttle > 100 {
		throttle = 100
	}

	drive := throttle / 100 * c.MaxDriveForce
	drag := c.DragCoeff * c.state.Speed

	c.state.Acceleration = (drive - drag) / c.Mass
	c.state.Speed += c.state.Acceleration * dt
	if c.state.Speed < 0 {
		c.state.Speed = 0
	}
	c.state.Position += c.state.Speed * dt

	return c.state, nil
}

// MaxSpeed returns the steady-state speed for a constant throttle, where
// drive force balances drag.
func (c *Car) MaxSpeed(throttle float64) float64 {
	if c.DragCoeff == 0 {
		return math.Inf(1)
	}
	return throttle / 100 * c.MaxDriveForce / c.DragCoeff
}

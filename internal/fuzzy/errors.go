package fuzzy

import "errors"

// Domain errors for controller configuration.
var (
	// ErrUnknownLabel indicates a rule referencing a label no variable defines.
	ErrUnknownLabel = errors.New("fuzzy: rule references unknown label")

	// ErrBadShape indicates membership control points that are not
	// non-decreasing, or the wrong number of them.
	ErrBadShape = errors.New("fuzzy: invalid membership control points")

	// ErrNoSets indicates a variable with no labeled sets.
	ErrNoSets = errors.New("fuzzy: variable has no membership sets")

	// ErrNoRules indicates an empty rule base.
	ErrNoRules = errors.New("fuzzy: empty rule base")

	// ErrBadResolution indicates a non-positive defuzzification step.
	ErrBadResolution = errors.New("fuzzy: resolution must be positive")

	// ErrBadRange indicates a variable whose min is not below its max.
	ErrBadRange = errors.New("fuzzy: variable range is empty")
)

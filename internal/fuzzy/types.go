package fuzzy

import "fmt"

// Set binds a linguistic label to a membership shape.
type Set struct {
	Label string
	Shape Shape
}

// Variable is a named numeric axis with a closed range covered by labeled
// fuzzy sets.
type Variable struct {
	Name string
	Min  float64
	Max  float64
	Sets []Set
}

// Clamp maps x to the nearest point of the variable's range.
func (v Variable) Clamp(x float64) float64 {
	if x < v.Min {
		return v.Min
	}
	if x > v.Max {
		return v.Max
	}
	return x
}

// Fuzzify evaluates every labeled set at x.
func (v Variable) Fuzzify(x float64) map[string]float64 {
	degrees := make(map[string]float64, len(v.Sets))
	for _, s := range v.Sets {
		degrees[s.Label] = s.Shape.At(x)
	}
	return degrees
}

func (v Variable) set(label string) (Set, bool) {
	for _, s := range v.Sets {
		if s.Label == label {
			return s, true
		}
	}
	return Set{}, false
}

func (v Variable) validate() error {
	if v.Min >= v.Max {
		return fmt.Errorf("%w: %s [%g, %g]", ErrBadRange, v.Name, v.Min, v.Max)
	}
	if len(v.Sets) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSets, v.Name)
	}
	for _, s := range v.Sets {
		if err := s.Shape.validate(); err != nil {
			return fmt.Errorf("%s[%s]: %w", v.Name, s.Label, err)
		}
	}
	return nil
}

// Rule is one IF-THEN row of the rule base: antecedent labels on the two
// input variables ANDed together, one consequent label on the output. An
// empty Accel label matches any acceleration, so the firing strength is
// the speed-error membership alone.
type Rule struct {
	Error    string
	Accel    string
	Throttle string
}

// Package fuzzy implements a Mamdani-style fuzzy inference controller
// mapping crisp inputs to a crisp throttle command.
//
// The controller is pure configuration: linguistic variables, their
// labeled membership functions, and the rule base are plain data fixed at
// construction time. Inference is the standard pipeline:
//
//   - fuzzification: membership degree of each input in every labeled set
//   - rule evaluation: firing strength = min over antecedent degrees
//   - aggregation: max firing strength per output label
//   - defuzzification: sampled centroid over the output axis
//
// # Example
//
//	ctrl := fuzzy.Default()
//	throttle := ctrl.Compute(targetSpeed-speed, accel)
//
// # Thread Safety
//
// A Controller is immutable after New and safe to share across any number
// of concurrent vehicle loops.
package fuzzy

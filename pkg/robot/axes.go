// Package robot provides hardware control for the Goliath arm.
package robot

import "github.com/goliath-arm/goliath/pkg/animation"

// Servo bus IDs for the Goliath arm, matching the animation registry order:
// seven arm axes followed by the two gripper sliders.
const (
	firstServoID = 1
	lastServoID  = 9
)

// AllAxes returns the arm's axis names in servo ID order (IDs 1-9).
func AllAxes() []animation.JointName {
	return animation.DefaultRegistry().Names()
}

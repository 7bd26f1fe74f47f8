// Package animation turns sparse keyframes into dense, organic-looking
// per-frame joint trajectories for the Goliath arm.
package animation

import "math"

// JointName identifies an animated axis of the arm.
type JointName string

// Joint names for the Goliath arm. Joints 1-6 are the arm proper, joint 7 is
// the linear rail, and the two sliders are the gripper fingers.
const (
	Joint1      JointName = "joint_1"
	Joint2      JointName = "joint_2"
	Joint3      JointName = "joint_3"
	Joint4      JointName = "joint_4"
	Joint5      JointName = "joint_5"
	Joint6      JointName = "joint_6"
	Joint7      JointName = "joint_7"
	SliderLeft  JointName = "slider_22"
	SliderRight JointName = "slider_23"
)

// Kind classifies a joint for unit handling and smoothing.
type Kind string

const (
	// Rotational joints are valued in degrees and get the smoothing pass.
	Rotational Kind = "rotational"
	// Slider joints are valued in native linear units (meters for the
	// gripper) and keep their raw, oscillation-free precision.
	Slider Kind = "slider"
)

// Oscillation holds the procedural motion parameters for one joint.
type Oscillation struct {
	Freq    float64 // cycles per frame unit
	BaseAmp float64 // same unit as the joint value
	Phase   float64 // radians
}

// Joint describes one animated axis.
type Joint struct {
	Name      JointName
	Kind      Kind
	Home      float64 // boundary/default value used when synthesizing frame 0
	OscFactor float64 // per-joint oscillation multiplier, >= 0
	Osc       Oscillation

	// SmoothingWindow overrides the derived moving-average window when > 0.
	SmoothingWindow int
}

// Registry is a fixed, ordered set of joint descriptors. Joint order
// determines column order in every exported table.
type Registry struct {
	joints []Joint
	index  map[JointName]int
}

// NewRegistry creates a registry from joint descriptors, preserving order.
// A duplicate name overwrites the earlier descriptor in place.
func NewRegistry(joints ...Joint) *Registry {
	r := &Registry{index: make(map[JointName]int, len(joints))}
	for _, j := range joints {
		if i, ok := r.index[j.Name]; ok {
			r.joints[i] = j
			continue
		}
		r.index[j.Name] = len(r.joints)
		r.joints = append(r.joints, j)
	}
	return r
}

// DefaultRegistry returns the Goliath arm: seven rotational axes plus the two
// gripper sliders, with the stock oscillation tuning. The base joint swings
// the most, the elbow stays stable, and the gripper rotation gets extra flair.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Joint{Name: Joint1, Kind: Rotational, OscFactor: 1.0, Osc: Oscillation{Freq: 0.08, BaseAmp: 3.0, Phase: 0}},
		Joint{Name: Joint2, Kind: Rotational, OscFactor: 0.8, Osc: Oscillation{Freq: 0.12, BaseAmp: 2.0, Phase: math.Pi / 4}},
		Joint{Name: Joint3, Kind: Rotational, OscFactor: 0.6, Osc: Oscillation{Freq: 0.10, BaseAmp: 1.5, Phase: math.Pi / 2}},
		Joint{Name: Joint4, Kind: Rotational, OscFactor: 1.1, Osc: Oscillation{Freq: 0.15, BaseAmp: 4.0, Phase: 3 * math.Pi / 4}},
		Joint{Name: Joint5, Kind: Rotational, OscFactor: 1.2, Osc: Oscillation{Freq: 0.20, BaseAmp: 5.0, Phase: math.Pi}},
		Joint{Name: Joint6, Kind: Rotational, OscFactor: 2.0, Osc: Oscillation{Freq: 0.25, BaseAmp: 4.0, Phase: 5 * math.Pi / 4}},
		Joint{Name: Joint7, Kind: Rotational, OscFactor: 0.3, Osc: Oscillation{Freq: 0.05, BaseAmp: 0.5, Phase: 0}},
		Joint{Name: SliderLeft, Kind: Slider, Home: -0.022, OscFactor: 0.1, Osc: Oscillation{Freq: 0.3, BaseAmp: 0.001, Phase: 0}},
		Joint{Name: SliderRight, Kind: Slider, Home: 0.022, OscFactor: 0.1, Osc: Oscillation{Freq: 0.3, BaseAmp: 0.001, Phase: math.Pi}},
	)
}

// Names returns all joint names in registry order.
func (r *Registry) Names() []JointName {
	names := make([]JointName, len(r.joints))
	for i, j := range r.joints {
		names[i] = j.Name
	}
	return names
}

// Joints returns a copy of all joint descriptors in registry order.
func (r *Registry) Joints() []Joint {
	out := make([]Joint, len(r.joints))
	copy(out, r.joints)
	return out
}

// Get returns the descriptor for a joint name.
func (r *Registry) Get(name JointName) (Joint, bool) {
	i, ok := r.index[name]
	if !ok {
		return Joint{}, false
	}
	return r.joints[i], true
}

// Len returns the number of registered joints.
func (r *Registry) Len() int {
	return len(r.joints)
}

// lookup returns a mutable descriptor, for the animator's setters.
func (r *Registry) lookup(name JointName) *Joint {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	return &r.joints[i]
}

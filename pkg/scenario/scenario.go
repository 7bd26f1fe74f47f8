// Package scenario defines the YAML document describing one generation run:
// run length, oscillation overrides, and the keyframe list.
package scenario

import (
	"fmt"

	"github.com/goliath-arm/goliath/pkg/animation"
)

// Scenario describes a complete generation run.
type Scenario struct {
	Version     string       `yaml:"version"`
	TotalFrames int          `yaml:"total_frames"`
	Oscillation *Oscillation `yaml:"oscillation,omitempty"`
	Keyframes   []Keyframe   `yaml:"keyframes"`
}

// Oscillation carries optional overrides applied before generation. Global
// and AllJoints are pointers so that an explicit 0 (oscillation off) is
// distinguishable from "not set".
type Oscillation struct {
	Global      *float64           `yaml:"global,omitempty"`
	AllJoints   *float64           `yaml:"all_joints,omitempty"`
	Factors     map[string]float64 `yaml:"factors,omitempty"`
	Amplitudes  map[string]float64 `yaml:"amplitudes,omitempty"`
	Frequencies map[string]float64 `yaml:"frequencies,omitempty"`
}

// Keyframe is one target pose at a frame.
type Keyframe struct {
	Frame  int                `yaml:"frame"`
	Values map[string]float64 `yaml:"values"`
}

// Animator builds a configured animator from the scenario: run length and
// oscillation overrides applied, keyframes loaded. The blanket all-joints
// factor applies first so per-joint overrides win.
func (s *Scenario) Animator(cfg animation.Config) (*animation.Animator, error) {
	if s.TotalFrames > 0 {
		cfg.TotalFrames = s.TotalFrames
	}
	a := animation.New(cfg)

	if osc := s.Oscillation; osc != nil {
		if osc.AllJoints != nil {
			a.SetAllJointsOscFactor(*osc.AllJoints)
		}
		for name, f := range osc.Factors {
			a.SetJointOscFactor(animation.JointName(name), f)
		}
		for name, amp := range osc.Amplitudes {
			a.SetOscAmplitude(animation.JointName(name), amp)
		}
		for name, freq := range osc.Frequencies {
			a.SetOscFrequency(animation.JointName(name), freq)
		}
		if osc.Global != nil {
			a.SetGlobalOscFactor(*osc.Global)
		}
	}

	for _, kf := range s.Keyframes {
		pose := make(animation.Pose, len(kf.Values))
		for name, v := range kf.Values {
			pose[animation.JointName(name)] = v
		}
		if err := a.AddKeyframe(kf.Frame, pose); err != nil {
			return nil, fmt.Errorf("scenario keyframe: %w", err)
		}
	}

	return a, nil
}

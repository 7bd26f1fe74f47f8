// Package rig imports euler-angle exports from a 3D animation tool. Each
// exported frame carries per-bone orientation in degrees; mapped bone axis
// channels become keyframe target values for the corresponding joints.
package rig

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliath-arm/goliath/pkg/animation"
)

// Export is the on-disk euler-angle document produced by the animation tool.
type Export struct {
	Armature   string        `json:"armature"`
	EulerOrder string        `json:"euler_order"`
	Units      string        `json:"units"`
	Frames     []FrameAngles `json:"frames"`
}

// FrameAngles is one exported frame: per-bone euler angles in degrees.
type FrameAngles struct {
	Frame  int                   `json:"frame"`
	Angles map[string]BoneAngles `json:"angles"`
}

// BoneAngles holds one bone's orientation, degrees per axis.
type BoneAngles struct {
	X float64 `json:"x_deg"`
	Y float64 `json:"y_deg"`
	Z float64 `json:"z_deg"`
}

// Axis selects one euler channel of a bone.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// value returns the selected channel. An unknown axis reads as z, the
// channel a flat arm rig articulates on.
func (b BoneAngles) value(axis Axis) float64 {
	switch axis {
	case AxisX:
		return b.X
	case AxisY:
		return b.Y
	default:
		return b.Z
	}
}

// Channel identifies one bone axis in the export.
type Channel struct {
	Bone string
	Axis Axis
}

// Mapping binds registry joints to export channels.
type Mapping map[animation.JointName]Channel

// DefaultMapping maps the arm's rotational joints to same-named bones on the
// z axis. Sliders are not driven from the rig; the gripper is keyframed by
// hand.
func DefaultMapping() Mapping {
	m := make(Mapping, 7)
	for _, name := range []animation.JointName{
		animation.Joint1, animation.Joint2, animation.Joint3, animation.Joint4,
		animation.Joint5, animation.Joint6, animation.Joint7,
	} {
		m[name] = Channel{Bone: string(name), Axis: AxisZ}
	}
	return m
}

// Load reads and parses an euler-angle export file.
func Load(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig export: %w", err)
	}

	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse rig export: %w", err)
	}
	if e.Units != "" && e.Units != "degrees" {
		return nil, fmt.Errorf("rig export units %q not supported, want degrees", e.Units)
	}

	return &e, nil
}

// Record is one keyframe derived from an export frame.
type Record struct {
	Frame  int
	Values animation.Pose
}

// Records converts the export into sparse keyframe records: every stride-th
// frame plus the final one (stride <= 1 keeps every frame). Bones missing
// from a frame are skipped with a warning; the joint simply gets no target
// there, which the interpolator treats as "stay put".
func (e *Export) Records(m Mapping, stride int, warnf func(format string, args ...any)) []Record {
	if stride < 1 {
		stride = 1
	}
	warn := func(format string, args ...any) {
		if warnf != nil {
			warnf(format, args...)
		}
	}

	var records []Record
	for i, fa := range e.Frames {
		if i%stride != 0 && i != len(e.Frames)-1 {
			continue
		}
		values := make(animation.Pose, len(m))
		for joint, ch := range m {
			bone, ok := fa.Angles[ch.Bone]
			if !ok {
				warn("frame %d: bone %q not in export, joint %s skipped", fa.Frame, ch.Bone, joint)
				continue
			}
			values[joint] = bone.value(ch.Axis)
		}
		if len(values) == 0 {
			continue
		}
		records = append(records, Record{Frame: fa.Frame, Values: values})
	}
	return records
}

// Apply loads the records into an animator as keyframes.
func Apply(a *animation.Animator, records []Record) error {
	for _, r := range records {
		if err := a.AddKeyframe(r.Frame, r.Values); err != nil {
			return fmt.Errorf("rig keyframe: %w", err)
		}
	}
	return nil
}

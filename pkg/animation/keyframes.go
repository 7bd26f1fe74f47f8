package animation

import (
	"fmt"
	"sort"
)

// Pose maps joint names to target values. Units follow the joint kind:
// degrees for rotational joints, native linear units for sliders.
type Pose map[JointName]float64

// clone returns a copy of the pose.
func (p Pose) clone() Pose {
	out := make(Pose, len(p))
	for name, v := range p {
		out[name] = v
	}
	return out
}

// Keyframes is a sparse mapping from frame index to a target pose. Inserting
// at an existing frame overwrites it.
type Keyframes struct {
	total  int
	frames map[int]Pose
}

// NewKeyframes creates an empty store for a run of totalFrames frames.
func NewKeyframes(totalFrames int) *Keyframes {
	return &Keyframes{
		total:  totalFrames,
		frames: make(map[int]Pose),
	}
}

// TotalFrames returns the length of the run in frames.
func (k *Keyframes) TotalFrames() int {
	return k.total
}

// Add stores a keyframe at the given frame, overwriting any existing one.
// Joints omitted from values are resolved at interpolation time: rotational
// joints default to 0, sliders to their registry home.
func (k *Keyframes) Add(frame int, values Pose) error {
	if frame < 0 || frame >= k.total {
		return fmt.Errorf("keyframe %d out of range [0, %d]", frame, k.total-1)
	}
	k.frames[frame] = values.clone()
	return nil
}

// Len returns the number of stored keyframes.
func (k *Keyframes) Len() int {
	return len(k.frames)
}

// At returns the pose stored at a frame, if any.
func (k *Keyframes) At(frame int) (Pose, bool) {
	p, ok := k.frames[frame]
	return p, ok
}

// Normalize guarantees that both boundary frames exist: a missing frame 0 is
// synthesized from the registry home pose, and a missing final frame clones
// frame 0 (so a run always returns to where it started). Idempotent; must run
// before interpolation. For a single-frame run the one frame covers both ends.
func (k *Keyframes) Normalize(reg *Registry) {
	if _, ok := k.frames[0]; !ok {
		home := make(Pose, reg.Len())
		for _, j := range reg.Joints() {
			home[j.Name] = j.Home
		}
		k.frames[0] = home
	}
	last := k.total - 1
	if _, ok := k.frames[last]; !ok {
		k.frames[last] = k.frames[0].clone()
	}
}

// SortedFrames returns the ascending sequence of keyframe frame indices.
func (k *Keyframes) SortedFrames() []int {
	frames := make([]int, 0, len(k.frames))
	for f := range k.frames {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

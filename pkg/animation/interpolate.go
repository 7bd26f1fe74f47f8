package animation

import "math"

// easeCosine reparameterizes linear progress into (1-cos(t*pi))/2, which has
// zero velocity at both ends. Because every segment starts and ends at rest,
// joined segments look continuous without explicit velocity matching across
// boundaries.
func easeCosine(t float64) float64 {
	return (1 - math.Cos(t*math.Pi)) / 2
}

// segment is one pair of adjacent keyframes.
type segment struct {
	startFrame, endFrame int
	start, end           Pose
}

// progress returns the linear parameter for a frame within the segment.
// A degenerate single-frame segment resolves to 0.
func (s segment) progress(frame int) float64 {
	if s.startFrame == s.endFrame {
		return 0
	}
	return float64(frame-s.startFrame) / float64(s.endFrame-s.startFrame)
}

// startValue resolves the joint's value at the segment start. A joint absent
// from the start pose defaults to 0 for rotational joints and to the registry
// home for sliders.
func (s segment) startValue(j Joint) float64 {
	if v, ok := s.start[j.Name]; ok {
		return v
	}
	if j.Kind == Slider {
		return j.Home
	}
	return 0
}

// endValue resolves the joint's value at the segment end. A joint absent from
// the end pose holds its start value for the whole segment: no target
// specified means stay put.
func (s segment) endValue(j Joint) float64 {
	if v, ok := s.end[j.Name]; ok {
		return v
	}
	return s.startValue(j)
}

// base returns the eased interpolated value for the joint at a frame.
func (s segment) base(j Joint, frame int) float64 {
	start := s.startValue(j)
	end := s.endValue(j)
	return start + (end-start)*easeCosine(s.progress(frame))
}

// movement returns the joint's total movement magnitude over the segment.
func (s segment) movement(j Joint) float64 {
	return math.Abs(s.endValue(j) - s.startValue(j))
}

// speedFactor damps oscillation for fast transits: speed is movement per
// frame, and the factor falls linearly from 1.0 toward a floor of 0.1. Fast
// moves should look purposeful; slow or held segments get the full jitter.
func (s segment) speedFactor(j Joint) float64 {
	length := s.endFrame - s.startFrame
	if length < 1 {
		length = 1
	}
	speed := s.movement(j) / float64(length)
	return math.Max(0.1, 1.0-speed*0.1)
}

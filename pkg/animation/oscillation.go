package animation

import "math"

// oscillation computes the procedural offset for a joint at a frame. The raw
// sinusoid is scaled by the per-joint factor, the global factor, and the
// segment's speed factor. Unknown joints contribute nothing.
func (a *Animator) oscillation(name JointName, frame int, speedFactor float64) float64 {
	j := a.reg.lookup(name)
	if j == nil {
		return 0
	}
	raw := j.Osc.BaseAmp * math.Sin(float64(frame)*j.Osc.Freq+j.Osc.Phase)
	return raw * j.OscFactor * a.globalOsc * speedFactor
}

// inPrecisionZone reports whether the frame lies strictly within the
// precision radius of any keyframe. Inside the zone oscillation is forced to
// zero for every joint, so precision operations (a gripper closing on an
// object) approach and leave the keyframe on the exact specified values.
func (a *Animator) inPrecisionZone(frame int, keyframes []int) bool {
	for _, kf := range keyframes {
		if abs(frame-kf) < a.cfg.PrecisionRadius {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

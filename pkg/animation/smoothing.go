package animation

import "math"

// smoothingWindow derives a joint's moving-average window from its
// oscillation factor: more oscillation gets more smoothing, floored at 3.
// An explicit override on the joint wins.
func smoothingWindow(j Joint) int {
	if j.SmoothingWindow > 0 {
		return j.SmoothingWindow
	}
	w := int(math.Round(j.OscFactor * 5))
	if w < 3 {
		w = 3
	}
	return w
}

// smooth applies a centered moving average to every rotational joint.
// Sliders keep their raw oscillation-free precision. Frames for which keep
// returns true (the precision zones) pass through untouched, so keyframe
// values stay exact. At the sequence boundaries the window truncates to the
// available range rather than padding or wrapping.
func smooth(tr *Trajectory, reg *Registry, keep func(frame int) bool) {
	for _, j := range reg.Joints() {
		if j.Kind != Rotational {
			continue
		}
		tr.setColumn(j.Name, movingAverage(tr.Column(j.Name), smoothingWindow(j), keep))
	}
}

// movingAverage returns the centered moving average of values with the given
// window size, skipping indices for which keep returns true.
func movingAverage(values []float64, window int, keep func(i int) bool) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	half := window / 2
	for i := range values {
		if keep != nil && keep(i) {
			continue
		}
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(values) {
			hi = len(values)
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

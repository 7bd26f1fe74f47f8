package animation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ExactAtKeyframes(t *testing.T) {
	a := New(Config{TotalFrames: 100})
	require.NoError(t, a.AddKeyframe(0, Pose{Joint1: 0}))
	require.NoError(t, a.AddKeyframe(50, Pose{Joint1: 30}))
	require.NoError(t, a.AddKeyframe(99, Pose{Joint1: 0}))

	tr := a.Generate()

	assert.Equal(t, 0.0, tr.Value(0, Joint1))
	assert.Equal(t, 30.0, tr.Value(50, Joint1))
	assert.Equal(t, 0.0, tr.Value(99, Joint1))
}

func TestGenerate_EveryCellDefined(t *testing.T) {
	a := New(Config{TotalFrames: 50})
	require.NoError(t, a.AddKeyframe(25, Pose{Joint1: 30, Joint5: -10}))

	tr := a.Generate()

	require.Equal(t, 50, tr.Frames())
	assert.Equal(t, a.Registry().Names(), tr.Joints())
	for _, name := range tr.Joints() {
		assert.Len(t, tr.Column(name), 50)
	}
}

func TestGenerate_PrecisionZoneSilencing(t *testing.T) {
	// Two runs differing only in oscillation must agree on every frame
	// within the precision radius of a keyframe.
	gen := func(global float64) *Trajectory {
		a := New(Config{TotalFrames: 100})
		a.SetGlobalOscFactor(global)
		require.NoError(t, a.AddKeyframe(0, Pose{Joint1: 0}))
		require.NoError(t, a.AddKeyframe(50, Pose{Joint1: 30}))
		require.NoError(t, a.AddKeyframe(99, Pose{Joint1: 0}))
		return a.Generate()
	}
	loud, quiet := gen(2.0), gen(0.0)

	for _, kf := range []int{0, 50, 99} {
		for f := kf - 9; f <= kf+9; f++ {
			if f < 0 || f > 99 {
				continue
			}
			for _, name := range loud.Joints() {
				assert.Equal(t, quiet.Value(f, name), loud.Value(f, name),
					"frame %d joint %s inside precision zone of keyframe %d", f, name, kf)
			}
		}
	}
}

func TestGenerate_OscillatesOutsideZones(t *testing.T) {
	gen := func(global float64) *Trajectory {
		a := New(Config{TotalFrames: 200})
		a.SetGlobalOscFactor(global)
		require.NoError(t, a.AddKeyframe(0, Pose{Joint1: 0}))
		require.NoError(t, a.AddKeyframe(199, Pose{Joint1: 0}))
		return a.Generate()
	}
	loud, quiet := gen(1.0), gen(0.0)

	diff := false
	for f := 10; f < 190; f++ {
		if loud.Value(f, Joint1) != quiet.Value(f, Joint1) {
			diff = true
			break
		}
	}
	assert.True(t, diff, "oscillation should be visible between the zones")
}

func TestGenerate_GlobalZeroIsPureEase(t *testing.T) {
	a := New(Config{TotalFrames: 100})
	a.SetGlobalOscFactor(0)
	require.NoError(t, a.AddKeyframe(0, Pose{Joint1: 0}))
	require.NoError(t, a.AddKeyframe(99, Pose{Joint1: 50}))

	tr := a.Generate()

	// With no oscillation anywhere the raw curve is the eased interpolation;
	// smoothing outside the precision zones averages that same curve.
	start, _ := a.Keyframes().At(0)
	end, _ := a.Keyframes().At(99)
	seg := segment{startFrame: 0, endFrame: 99, start: start, end: end}
	j, _ := a.Registry().Get(Joint1)

	expected := make([]float64, 100)
	for f := 0; f < 100; f++ {
		expected[f] = seg.base(j, f)
	}
	expected = movingAverage(expected, smoothingWindow(j), func(f int) bool {
		return a.inPrecisionZone(f, []int{0, 99})
	})

	for f := 0; f < 100; f++ {
		assert.InDelta(t, expected[f], tr.Value(f, Joint1), 1e-12, "frame %d", f)
	}
}

func TestGenerate_SliderStillness(t *testing.T) {
	a := New(Config{TotalFrames: 200})
	// Slider moves less than the stillness threshold over the run.
	require.NoError(t, a.AddKeyframe(0, Pose{SliderLeft: -0.0220}))
	require.NoError(t, a.AddKeyframe(199, Pose{SliderLeft: -0.0215}))

	tr := a.Generate()

	start, _ := a.Keyframes().At(0)
	end, _ := a.Keyframes().At(199)
	seg := segment{startFrame: 0, endFrame: 199, start: start, end: end}
	j, _ := a.Registry().Get(SliderLeft)

	// Sliders are not smoothed, so a still slider is exactly the eased base.
	for f := 0; f < 200; f++ {
		assert.Equal(t, seg.base(j, f), tr.Value(f, SliderLeft), "frame %d", f)
	}
}

func TestGenerate_MovingSliderOscillates(t *testing.T) {
	a := New(Config{TotalFrames: 200})
	require.NoError(t, a.AddKeyframe(0, Pose{SliderLeft: -0.022}))
	require.NoError(t, a.AddKeyframe(199, Pose{SliderLeft: 0.022}))

	tr := a.Generate()

	start, _ := a.Keyframes().At(0)
	end, _ := a.Keyframes().At(199)
	seg := segment{startFrame: 0, endFrame: 199, start: start, end: end}
	j, _ := a.Registry().Get(SliderLeft)

	diff := false
	for f := 20; f < 180; f++ {
		if tr.Value(f, SliderLeft) != seg.base(j, f) {
			diff = true
			break
		}
	}
	assert.True(t, diff, "a moving slider should pick up oscillation")
}

func TestGenerate_SharedBoundaryIdempotent(t *testing.T) {
	a := New(Config{TotalFrames: 100})
	require.NoError(t, a.AddKeyframe(0, Pose{Joint1: 0}))
	require.NoError(t, a.AddKeyframe(50, Pose{Joint1: 30}))
	require.NoError(t, a.AddKeyframe(99, Pose{Joint1: -10}))

	a.Keyframes().Normalize(a.Registry())
	left, _ := a.Keyframes().At(0)
	mid, _ := a.Keyframes().At(50)
	right, _ := a.Keyframes().At(99)
	j, _ := a.Registry().Get(Joint1)

	segA := segment{startFrame: 0, endFrame: 50, start: left, end: mid}
	segB := segment{startFrame: 50, endFrame: 99, start: mid, end: right}

	assert.Equal(t, segA.base(j, 50), segB.base(j, 50),
		"both segments must compute the identical value at the shared frame")
}

func TestGenerate_DefaultSequenceFallback(t *testing.T) {
	var logs []string
	a := New(Config{TotalFrames: 400, Logf: func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}})

	tr := a.Generate()

	require.Equal(t, 400, tr.Frames())
	// The precise pickup pose lands at frame 200.
	assert.InDelta(t, -84.0, tr.Value(200, Joint2), 1e-12)
	assert.InDelta(t, 31.2, tr.Value(200, Joint3), 1e-12)
	assert.InDelta(t, -90.0, tr.Value(200, Joint6), 1e-12)
	// Gripper closes between pickup and hold.
	assert.InDelta(t, -0.003, tr.Value(200, SliderLeft), 1e-12)
	assert.InDelta(t, -0.022, tr.Value(210, SliderLeft), 1e-12)
	// Home at both ends.
	assert.InDelta(t, 20.0, tr.Value(0, Joint3), 1e-12)
	assert.InDelta(t, 20.0, tr.Value(399, Joint3), 1e-12)

	assert.True(t, strings.Contains(strings.Join(logs, "\n"), "default pick-and-place"),
		"fallback should be reported")
}

func TestSetters_ClampAndWarn(t *testing.T) {
	var logs []string
	a := New(Config{Logf: func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}})

	a.SetGlobalOscFactor(-1)
	assert.Equal(t, 0.0, a.globalOsc)

	a.SetJointOscFactor(Joint1, -0.5)
	j, _ := a.Registry().Get(Joint1)
	assert.Equal(t, 0.0, j.OscFactor)

	a.SetOscAmplitude(Joint2, -3)
	j2, _ := a.Registry().Get(Joint2)
	assert.Equal(t, 0.0, j2.Osc.BaseAmp)

	a.SetAllJointsOscFactor(0.5)
	for _, j := range a.Registry().Joints() {
		assert.Equal(t, 0.5, j.OscFactor)
	}

	before := len(logs)
	a.SetJointOscFactor("joint_99", 1)
	a.SetOscAmplitude("joint_99", 1)
	a.SetOscFrequency("joint_99", 1)
	require.Len(t, logs, before+3)
	for _, line := range logs[before:] {
		assert.Contains(t, line, "unknown joint")
	}
}

func TestSetOscFrequency(t *testing.T) {
	a := New(Config{})
	a.SetOscFrequency(Joint1, 0.15)
	j, _ := a.Registry().Get(Joint1)
	assert.Equal(t, 0.15, j.Osc.Freq)
}

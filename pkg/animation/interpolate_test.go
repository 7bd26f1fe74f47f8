package animation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseCosine_Endpoints(t *testing.T) {
	assert.InDelta(t, 0.0, easeCosine(0), 1e-12)
	assert.InDelta(t, 0.5, easeCosine(0.5), 1e-12)
	assert.InDelta(t, 1.0, easeCosine(1), 1e-12)
}

func TestSegment_BasePassesThroughEndpoints(t *testing.T) {
	j := Joint{Name: Joint1, Kind: Rotational}
	seg := segment{
		startFrame: 10,
		endFrame:   60,
		start:      Pose{Joint1: -20},
		end:        Pose{Joint1: 30},
	}

	assert.InDelta(t, -20.0, seg.base(j, 10), 1e-12)
	assert.InDelta(t, 30.0, seg.base(j, 60), 1e-12)
	assert.InDelta(t, 5.0, seg.base(j, 35), 1e-12) // midpoint of the ease
}

func TestSegment_DegenerateResolvesToStart(t *testing.T) {
	j := Joint{Name: Joint1, Kind: Rotational}
	seg := segment{
		startFrame: 50,
		endFrame:   50,
		start:      Pose{Joint1: 12},
		end:        Pose{Joint1: 99},
	}

	assert.Equal(t, 0.0, seg.progress(50))
	assert.InDelta(t, 12.0, seg.base(j, 50), 1e-12)
}

func TestSegment_MissingEndValueHoldsStart(t *testing.T) {
	j := Joint{Name: Joint2, Kind: Rotational}
	seg := segment{
		startFrame: 0,
		endFrame:   100,
		start:      Pose{Joint2: -40},
		end:        Pose{Joint1: 10}, // no target for joint_2
	}

	for _, frame := range []int{0, 25, 50, 75, 100} {
		assert.InDelta(t, -40.0, seg.base(j, frame), 1e-12,
			"frame %d should hold the start value", frame)
	}
	assert.Equal(t, 0.0, seg.movement(j))
}

func TestSegment_MissingStartValueDefaults(t *testing.T) {
	rot := Joint{Name: Joint1, Kind: Rotational}
	sld := Joint{Name: SliderLeft, Kind: Slider, Home: -0.022}
	seg := segment{startFrame: 0, endFrame: 10, start: Pose{}, end: Pose{}}

	assert.Equal(t, 0.0, seg.startValue(rot))
	assert.Equal(t, -0.022, seg.startValue(sld))
}

func TestSegment_SpeedFactor(t *testing.T) {
	j := Joint{Name: Joint1, Kind: Rotational}

	tests := []struct {
		name     string
		movement float64
		length   int
		expected float64
	}{
		{"held joint gets full amplitude", 0, 100, 1.0},
		{"slow transit barely damps", 10, 100, 0.99},
		{"fast transit damps", 50, 10, 0.5},
		{"very fast transit hits the floor", 100, 2, 0.1},
		{"degenerate length counts as one frame", 5, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := segment{
				startFrame: 0,
				endFrame:   tt.length,
				start:      Pose{Joint1: 0},
				end:        Pose{Joint1: tt.movement},
			}
			assert.InDelta(t, tt.expected, seg.speedFactor(j), 1e-9)
		})
	}
}

func TestSegment_SpeedFactorMonotone(t *testing.T) {
	j := Joint{Name: Joint1, Kind: Rotational}

	// Larger movement over the same segment length never raises the factor,
	// and the factor never drops below 0.1.
	prev := math.Inf(1)
	for dist := 0.0; dist <= 200; dist += 5 {
		seg := segment{
			startFrame: 0,
			endFrame:   20,
			start:      Pose{Joint1: 0},
			end:        Pose{Joint1: dist},
		}
		f := seg.speedFactor(j)
		assert.LessOrEqual(t, f, prev)
		assert.GreaterOrEqual(t, f, 0.1)
		prev = f
	}
}

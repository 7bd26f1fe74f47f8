package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	require.Equal(t, 9, reg.Len())
	assert.Equal(t, []JointName{
		Joint1, Joint2, Joint3, Joint4, Joint5, Joint6, Joint7,
		SliderLeft, SliderRight,
	}, reg.Names(), "column order is fixed")

	j6, ok := reg.Get(Joint6)
	require.True(t, ok)
	assert.Equal(t, Rotational, j6.Kind)
	assert.Equal(t, 2.0, j6.OscFactor, "gripper rotation gets the most flair")

	sl, ok := reg.Get(SliderLeft)
	require.True(t, ok)
	assert.Equal(t, Slider, sl.Kind)
	assert.Equal(t, -0.022, sl.Home)

	_, ok = reg.Get("joint_99")
	assert.False(t, ok)
}

func TestNewRegistry_DuplicateOverwritesInPlace(t *testing.T) {
	reg := NewRegistry(
		Joint{Name: Joint1, OscFactor: 1},
		Joint{Name: Joint2, OscFactor: 1},
		Joint{Name: Joint1, OscFactor: 9},
	)

	require.Equal(t, 2, reg.Len())
	assert.Equal(t, []JointName{Joint1, Joint2}, reg.Names())
	j, _ := reg.Get(Joint1)
	assert.Equal(t, 9.0, j.OscFactor)
}

package forcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullStorm(t *testing.T) {
	f := FullStorm(50.)
	assert.Equal(t, 1, f.Nstep())
	assert.Equal(t, 50., f.Total())
}

func TestHyetographShapes(t *testing.T) {
	for _, shape := range []string{"uniform", "front", "peak"} {
		t.Run(shape, func(t *testing.T) {
			f, err := Hyetograph(75., 24, shape)
			require.NoError(t, err)
			assert.Equal(t, 24, f.Nstep())
			assert.InDelta(t, 75., f.Total(), 1e-9, "increments must sum to the storm depth")
			for i, p := range f.P {
				assert.Positive(t, p, "step %d", i)
			}
		})
	}
}

func TestUniformSteps(t *testing.T) {
	f, err := Hyetograph(60., 6, "uniform")
	require.NoError(t, err)
	for _, p := range f.P {
		assert.InDelta(t, 10., p, 1e-9)
	}
}

func TestFrontLoaded(t *testing.T) {
	f, err := Hyetograph(100., 10, "front")
	require.NoError(t, err)
	for i := 0; i+1 < len(f.P); i++ {
		assert.Greater(t, f.P[i], f.P[i+1], "front-loaded steps must decrease")
	}
}

func TestPeakShape(t *testing.T) {
	f, err := Hyetograph(100., 11, "peak")
	require.NoError(t, err)
	mid := 5
	for i := 0; i < mid; i++ {
		assert.Less(t, f.P[i], f.P[i+1], "rising limb")
	}
	for i := mid; i+1 < len(f.P); i++ {
		assert.Greater(t, f.P[i], f.P[i+1], "falling limb")
	}
}

func TestHyetographErrors(t *testing.T) {
	_, err := Hyetograph(0., 10, "uniform")
	assert.Error(t, err)
	_, err = Hyetograph(50., 0, "uniform")
	assert.Error(t, err)
	_, err = Hyetograph(50., 10, "sideways")
	assert.Error(t, err)
}

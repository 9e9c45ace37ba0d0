package model

import (
	"math/rand"
	"testing"

	"github.com/maseology/cnrr/grid"
	"github.com/maseology/cnrr/tem"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(v []float64) float64 {
	s := 0.
	for _, x := range v {
		s += x
	}
	return s
}

func TestFlatRoutesNothing(t *testing.T) {
	dom := flatDomain(t, 10, 78.)
	rt := newRouter(dom.TEM)

	src := make([]float64, 100)
	for i := range src {
		src[i] = 12.2
	}
	pond := make([]float64, 100)
	require.NoError(t, rt.route(src, pond, 0.85, 3))
	for i, p := range pond {
		assert.Equal(t, 12.2, p, "cell %d: no neighbour is strictly lower, water stays put", i)
	}
}

func TestSingleDepression(t *testing.T) {
	// level grid with one corner cell lowered: only its three neighbours
	// drain, and only into the corner
	gd, err := grid.NewDefinition(10, 10, 10.)
	require.NoError(t, err)
	z := make([]float64, 100)
	for i := range z {
		z[i] = 1.
	}
	z[0] = 0.
	tm, err := tem.New(gd, z)
	require.NoError(t, err)
	rt := newRouter(tm)

	const q = 10.
	src := make([]float64, 100)
	for i := range src {
		src[i] = q
	}
	pond := make([]float64, 100)
	require.NoError(t, rt.route(src, pond, 0.85, 1))

	adj := []int{1, 10, 11} // the depression's D8 neighbours
	for _, i := range adj {
		assert.InDelta(t, 0.15*q, pond[i], 1e-12, "cell %d retains exactly 15%%", i)
	}
	assert.InDelta(t, q+3.*0.85*q, pond[0], 1e-12, "the depression collects 85%% from each neighbour")
	for i := range pond {
		if i == 0 || i == 1 || i == 10 || i == 11 {
			continue
		}
		assert.Equal(t, q, pond[i], "cell %d is level with its neighbours and keeps its water", i)
	}
}

func TestConservation(t *testing.T) {
	// no water is created or lost per sweep, over an irregular surface
	gd, err := grid.NewDefinition(20, 20, 10.)
	require.NoError(t, err)
	rng := rand.New(mrg63k3a.New())
	rng.Seed(42)
	z := make([]float64, 400)
	src := make([]float64, 400)
	for i := range z {
		z[i] = rng.Float64() * 30.
		src[i] = rng.Float64() * 5.
	}
	tm, err := tem.New(gd, z)
	require.NoError(t, err)
	rt := newRouter(tm)

	for _, iter := range []int{1, 3, 7} {
		pond := make([]float64, 400)
		require.NoError(t, rt.route(src, pond, 0.85, iter))
		assert.InDelta(t, sum(src), sum(pond), 1e-9, "%d iterations", iter)
		for i, p := range pond {
			assert.GreaterOrEqual(t, p, 0., "cell %d", i)
		}
	}
}

func TestPondAccumulates(t *testing.T) {
	dom := flatDomain(t, 5, 78.)
	rt := newRouter(dom.TEM)
	src := make([]float64, 25)
	for i := range src {
		src[i] = 2.
	}
	pond := make([]float64, 25)
	require.NoError(t, rt.route(src, pond, 0.5, 1))
	require.NoError(t, rt.route(src, pond, 0.5, 1))
	assert.Equal(t, 4., pond[0], "ponding is additive across steps")
	assert.Equal(t, 2., src[0], "sources are left untouched")
}

func TestShapeMismatch(t *testing.T) {
	dom := flatDomain(t, 5, 78.)
	rt := newRouter(dom.TEM)
	err := rt.route(make([]float64, 24), make([]float64, 25), 0.85, 1)
	assert.Error(t, err)
	err = rt.route(make([]float64, 25), make([]float64, 20), 0.85, 1)
	assert.Error(t, err)
}

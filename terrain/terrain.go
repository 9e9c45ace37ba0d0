// Package terrain synthesizes the deterministic elevation field: summed
// bands of block-upsampled random noise, a directional gradient imposing the
// dominant downhill direction, and a perlin field carving basins.
package terrain

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/mmaths"
)

const skew = 1.1 // power applied to the normalized field to deepen basins

// Params parameterizes one synthesis.
type Params struct {
	Nrow, Ncol, Octaves                                       int
	Persistence, DirectionalBias, ValleyEmphasis, ReliefScale float64
}

// Check validates the parameter set.
func (p *Params) Check() error {
	if p.Nrow <= 0 || p.Ncol <= 0 {
		return scenario.Configf("terrain", "dimensions must be positive, got %d x %d", p.Nrow, p.Ncol)
	}
	if p.Octaves < 1 {
		return scenario.Configf("terrain", "need at least one octave, got %d", p.Octaves)
	}
	if 1<<(p.Octaves-1) > min(p.Nrow, p.Ncol)/2 {
		return scenario.Configf("terrain", "%d octaves infeasible for a %d x %d grid", p.Octaves, p.Nrow, p.Ncol)
	}
	if p.ReliefScale <= 0. {
		return scenario.Configf("terrain", "relief scale must be positive, got %g", p.ReliefScale)
	}
	if p.DirectionalBias < 0. || p.DirectionalBias > 1. {
		return scenario.Configf("terrain", "directional bias must lie in [0,1], got %g", p.DirectionalBias)
	}
	if p.ValleyEmphasis < 0. || p.ValleyEmphasis > 1. {
		return scenario.Configf("terrain", "valley emphasis must lie in [0,1], got %g", p.ValleyEmphasis)
	}
	return nil
}

// Build synthesizes the elevation field in [0, ReliefScale], row-major.
// Identical parameters and rng state yield a bit-identical field; the caller
// owns the rng and reseeds it only on explicit restart.
func Build(par Params, rng *rand.Rand) ([]float64, error) {
	if err := par.Check(); err != nil {
		return nil, err
	}
	nr, nc := par.Nrow, par.Ncol
	z := make([]float64, nr*nc)

	// fractal bands: octave o sampled on a 2^o-coarser lattice, block-upsampled
	w := 1.
	for o := 0; o < par.Octaves; o++ {
		bs := 1 << o
		bnr, bnc := (nr+bs-1)/bs, (nc+bs-1)/bs
		band := make([]float64, bnr*bnc)
		for i := range band {
			band[i] = rng.Float64()*2. - 1.
		}
		for r := 0; r < nr; r++ {
			br := r / bs
			for c := 0; c < nc; c++ {
				z[r*nc+c] += band[br*bnc+c/bs] * w
			}
		}
		w *= par.Persistence
	}

	// dominant downhill direction: high at the top edge, falling linearly
	normalize(z)
	for r := 0; r < nr; r++ {
		g := 1.
		if nr > 1 {
			g = 1. - float64(r)/float64(nr-1)
		}
		for c := 0; c < nc; c++ {
			i := r*nc + c
			z[i] = z[i]*(1.-par.DirectionalBias) + g*par.DirectionalBias
		}
	}

	// carve basins with an independently-seeded perlin field
	if par.ValleyEmphasis > 0. {
		prl := perlin.NewPerlin(2., 2., 3, rng.Int63())
		const freq = 0.07
		for r := 0; r < nr; r++ {
			for c := 0; c < nc; c++ {
				v := (prl.Noise2D(float64(c)*freq, float64(r)*freq) + 1.) / 2.
				z[r*nc+c] -= v * par.ValleyEmphasis
			}
		}
	}

	normalize(z)
	for i, v := range z {
		z[i] = mmaths.LinearTransform(0., par.ReliefScale, math.Pow(v, skew))
	}
	return z, nil
}

// normalize rescales in place to [0,1]; a flat field maps to zero.
func normalize(z []float64) {
	zn, zx := z[0], z[0]
	for _, v := range z {
		if v < zn {
			zn = v
		}
		if v > zx {
			zx = v
		}
	}
	if zx <= zn {
		for i := range z {
			z[i] = 0.
		}
		return
	}
	for i, v := range z {
		z[i] = (v - zn) / (zx - zn)
	}
}

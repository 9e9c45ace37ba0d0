// Package forcing builds the storm forcing: a total rainfall depth split
// into per-step increments, optionally shaped.
package forcing

import "github.com/maseology/cnrr/scenario"

// Forcing holds the incremental rainfall series of one storm.
type Forcing struct {
	P           []float64 // incremental rainfall per step [mm]
	IntervalSec float64
}

// Nstep returns the step count.
func (f *Forcing) Nstep() int { return len(f.P) }

// Total returns the storm depth [mm].
func (f *Forcing) Total() float64 {
	s := 0.
	for _, v := range f.P {
		s += v
	}
	return s
}

// FullStorm returns the entire depth as a single step.
func FullStorm(totalmm float64) *Forcing {
	return &Forcing{P: []float64{totalmm}, IntervalSec: 3600.}
}

// Hyetograph splits a storm depth into nstep increments. Shapes:
// "uniform" equal steps, "front" linearly front-loaded, "peak" triangular
// with the maximum at mid-storm. Increments always sum to the total depth.
func Hyetograph(totalmm float64, nstep int, shape string) (*Forcing, error) {
	if totalmm <= 0. {
		return nil, scenario.Configf("forcing", "storm depth must be positive, got %g", totalmm)
	}
	if nstep < 1 {
		return nil, scenario.Configf("forcing", "need at least one step, got %d", nstep)
	}
	w := make([]float64, nstep)
	switch shape {
	case "uniform":
		for i := range w {
			w[i] = 1.
		}
	case "front":
		for i := range w {
			w[i] = float64(nstep - i)
		}
	case "peak":
		mid := float64(nstep-1) / 2.
		for i := range w {
			d := float64(i) - mid
			if d < 0. {
				d = -d
			}
			w[i] = mid + 1. - d
		}
	default:
		return nil, scenario.Configf("forcing", "unknown hyetograph shape %q", shape)
	}
	ws := 0.
	for _, v := range w {
		ws += v
	}
	p := make([]float64, nstep)
	acc := 0.
	for i := 0; i < nstep-1; i++ {
		p[i] = totalmm * w[i] / ws
		acc += p[i]
	}
	p[nstep-1] = totalmm - acc // exact total, absorbing rounding
	return &Forcing{P: p, IntervalSec: 3600.}, nil
}

package model

import (
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/cnrr/tem"
)

// router redistributes runoff downhill (D8) into the cumulative ponding
// grid. Each sweep reads every cell against the pre-sweep state and applies
// buffered inflows only after the full sweep, so the result is independent
// of cell visitation order.
type router struct {
	ds       []int // D8 downslope pointer per cell; -1 at local minima
	inc, wrk []float64
}

func newRouter(t *tem.TEM) *router {
	return &router{
		ds:  t.Downslope(),
		inc: make([]float64, t.NumCells()),
		wrk: make([]float64, t.NumCells()),
	}
}

// route moves flowfrac of each cell's water to its downslope neighbour for
// the given number of sweeps and accumulates the result into pond. src is
// left untouched; pond is additive and never replaced.
func (r *router) route(src, pond []float64, flowfrac float64, iter int) error {
	if len(src) != len(r.ds) || len(pond) != len(r.ds) {
		return scenario.Configf("router", "grid shape mismatch: %d/%d cells against %d", len(src), len(pond), len(r.ds))
	}
	w := r.wrk
	copy(w, src)
	for k := 0; k < iter; k++ {
		for i := range r.inc {
			r.inc[i] = 0.
		}
		for i, ds := range r.ds {
			if ds < 0 {
				continue // local minimum retains everything
			}
			x := w[i] * flowfrac
			r.inc[ds] += x
			w[i] -= x
		}
		for i, v := range r.inc {
			w[i] += v
		}
	}
	for i, v := range w {
		pond[i] += v
	}
	return nil
}

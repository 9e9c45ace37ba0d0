// Package tem builds the topologic elevation model: per-cell D8 downslope
// pointers with gradients, upslope cross-references and a downslope-safe
// processing order, derived once from a synthesized elevation field.
package tem

import (
	"math"

	"github.com/maseology/cnrr/grid"
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/mmaths/topology"
)

// TEM topologic elevation model
type TEM struct {
	TECs []TEC
	us   [][]int // upslope cell ids, per cell
	ord  []int   // cell ids ordered such that upslope cells precede their downslope cell
	gd   *grid.Definition
}

// New builds the TEM from an elevation field. Every cell points to its
// strictly lowest of the 8 neighbours; cells with no strictly lower
// neighbour are local minima (DS = -1).
func New(gd *grid.Definition, z []float64) (*TEM, error) {
	if !gd.Sameshape(z) {
		return nil, scenario.Configf("tem", "elevation length %d does not match %d x %d grid", len(z), gd.Nrow, gd.Ncol)
	}
	nc := gd.Ncells()
	t := &TEM{
		TECs: make([]TEC, nc),
		us:   make([][]int, nc),
		gd:   gd,
	}
	diag := gd.Cwidth * math.Sqrt2
	for i := 0; i < nc; i++ {
		ds, zmin := -1, z[i]
		for _, n := range gd.Buffer(i) {
			if z[n] < zmin {
				ds, zmin = n, z[n]
			}
		}
		g := 0.
		if ds >= 0 {
			ri, ci := gd.RowCol(i)
			rd, cd := gd.RowCol(ds)
			run := gd.Cwidth
			if ri != rd && ci != cd {
				run = diag
			}
			g = (z[i] - zmin) / run
		}
		t.TECs[i] = TEC{Z: z[i], G: g, DS: ds}
	}
	t.buildUpslopes()
	t.buildOrder()
	return t, nil
}

func (t *TEM) buildUpslopes() {
	for i, c := range t.TECs {
		if c.DS >= 0 {
			t.us[c.DS] = append(t.us[c.DS], i)
		}
	}
}

func (t *TEM) buildOrder() {
	ds := make(map[int]int, len(t.TECs))
	for i, c := range t.TECs {
		ds[i] = c.DS
	}
	t.ord = topology.OrderFromToTree(ds, -1)
}

// NumCells number of cells that make up the TEM
func (t *TEM) NumCells() int { return len(t.TECs) }

// GD returns the grid definition the TEM was built on.
func (t *TEM) GD() *grid.Definition { return t.gd }

// Downslope returns the D8 pointer of every cell.
func (t *TEM) Downslope() []int {
	ds := make([]int, len(t.TECs))
	for i, c := range t.TECs {
		ds[i] = c.DS
	}
	return ds
}

// Order returns cell ids sorted downslope-safe: by the time a cell is
// visited, every upslope contributor has already been visited.
func (t *TEM) Order() []int { return t.ord }

// UpIDs returns the cells draining directly into cid.
func (t *TEM) UpIDs(cid int) []int { return t.us[cid] }

// UnitContributingArea computes the (unit) contributing area from a given
// cell id, this cell included.
func (t *TEM) UnitContributingArea(cid int) int {
	c := 0
	var climb func(int)
	climb = func(i int) {
		c++
		for _, u := range t.us[i] {
			climb(u)
		}
	}
	climb(cid)
	return c
}

// Concentrated returns the cells whose contributing area meets nmin cells,
// an approximation of where flow concentrates into channels.
func (t *TEM) Concentrated(nmin int) []int {
	uca := make([]int, len(t.TECs))
	for i := range uca {
		uca[i] = 1
	}
	for _, i := range t.ord { // upslope counts are complete before their downslope cell is visited
		if ds := t.TECs[i].DS; ds >= 0 {
			uca[ds] += uca[i]
		}
	}
	var cc []int
	for i, n := range uca {
		if n >= nmin {
			cc = append(cc, i)
		}
	}
	return cc
}

// MeanGradPct returns the mean downslope gradient in percent.
func (t *TEM) MeanGradPct() float64 {
	s := 0.
	for _, c := range t.TECs {
		s += c.G
	}
	return s / float64(len(t.TECs)) * 100.
}

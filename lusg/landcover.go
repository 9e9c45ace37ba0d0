// Package lusg classifies the synthesized surface into land cover and maps
// cover to hydrologic parameters: a road network and building clusters are
// generated from the terrain, forest fills the most desirable remainder, and
// each cover class carries a runoff curve number.
package lusg

import "github.com/maseology/cnrr/grid"

// cover types
const (
	Ground CoverType = iota
	Forest
	Built
)

// CoverType is the land-cover class of one cell.
type CoverType uint8

func (c CoverType) String() string {
	switch c {
	case Forest:
		return "forest"
	case Built:
		return "built"
	default:
		return "ground"
	}
}

// LandCover holds the classified cover field. Every cell belongs to exactly
// one class; Road flags the subset of Built cells forming the road network.
// The field is immutable once classified.
type LandCover struct {
	GD    *grid.Definition
	Cover []CoverType
	Road  []bool
}

func newLandCover(gd *grid.Definition) *LandCover {
	return &LandCover{
		GD:    gd,
		Cover: make([]CoverType, gd.Ncells()),
		Road:  make([]bool, gd.Ncells()),
	}
}

// Counts returns cell counts per class.
func (lc *LandCover) Counts() (nForest, nGround, nBuilt int) {
	for _, c := range lc.Cover {
		switch c {
		case Forest:
			nForest++
		case Built:
			nBuilt++
		default:
			nGround++
		}
	}
	return
}

// Fractions returns the areal breakdown per class.
func (lc *LandCover) Fractions() (fForest, fGround, fBuilt float64) {
	nf, ng, nb := lc.Counts()
	fn := float64(lc.GD.Ncells())
	return float64(nf) / fn, float64(ng) / fn, float64(nb) / fn
}

// NRoad returns the road-cell count.
func (lc *LandCover) NRoad() int {
	n := 0
	for _, r := range lc.Road {
		if r {
			n++
		}
	}
	return n
}

func (lc *LandCover) paintBuilt(cid int, road bool) {
	if cid < 0 {
		return
	}
	lc.Cover[cid] = Built
	if road {
		lc.Road[cid] = true
	}
}

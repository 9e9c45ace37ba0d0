package lusg

import (
	"math"
	"math/rand"

	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/cnrr/tem"
)

const (
	buildThresh = 0.55 // minimum centre score for a building cluster
	driftBound  = 2.5  // road drift accumulator clamp
)

// Params parameterizes one classification.
type Params struct {
	ForestFrac, BuiltFrac float64
	Curviness             float64
	SpurCount             int
	RoadHalfWidth         int

	// optional placement-policy overrides; nil selects the default
	// weighted-sum heuristics
	BuildingScorer, ForestScorer ScorerFactory
}

// Check validates the parameter set. ForestFrac+BuiltFrac may exceed one:
// built placement runs first and forest saturates below its nominal target.
func (p *Params) Check() error {
	if p.ForestFrac < 0. || p.ForestFrac > 1. {
		return scenario.Configf("lusg", "forest fraction must lie in [0,1], got %g", p.ForestFrac)
	}
	if p.BuiltFrac < 0. || p.BuiltFrac > 1. {
		return scenario.Configf("lusg", "built fraction must lie in [0,1], got %g", p.BuiltFrac)
	}
	if p.Curviness < 0. {
		return scenario.Configf("lusg", "curviness must be non-negative, got %g", p.Curviness)
	}
	if p.SpurCount < 0 || p.RoadHalfWidth < 0 {
		return scenario.Configf("lusg", "road parameters must be non-negative")
	}
	return nil
}

// Classify assigns every cell of the elevation model to one cover class:
// the road network and building clusters first, then forest, leaving Ground
// as the remainder. The result is deterministic for a given rng state.
func Classify(t *tem.TEM, par Params, rng *rand.Rand) (*LandCover, error) {
	if err := par.Check(); err != nil {
		return nil, err
	}
	gd := t.GD()
	lc := newLandCover(gd)

	buildRoads(t, lc, par, rng)

	// settlement clusters, stopping once the built-area target is met
	nbTarget := int(par.BuiltFrac * float64(gd.Ncells()))
	bsf := par.BuildingScorer
	if bsf == nil {
		bsf = newBuildingScorer
	}
	bscore := scoreAll(bsf(t, lc, rng), gd.Ncells())
	_, _, nb := lc.Counts()
	for _, cid := range rank(bscore) {
		if nb >= nbTarget {
			break
		}
		if bscore[cid] <= buildThresh {
			break // ranked descending; nothing further qualifies
		}
		r, c := gd.RowCol(cid)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if n := gd.CellID(r+dr, c+dc); n >= 0 && lc.Cover[n] != Built {
					lc.paintBuilt(n, false)
					nb++
				}
			}
		}
	}

	// forest fills the most desirable non-built cells; under
	// oversubscription it silently saturates below its nominal target
	nfTarget := int(par.ForestFrac * float64(gd.Ncells()))
	fsf := par.ForestScorer
	if fsf == nil {
		fsf = newForestScorer
	}
	nf := 0
	for _, cid := range rank(scoreAll(fsf(t, lc, rng), gd.Ncells())) {
		if nf >= nfTarget {
			break
		}
		if lc.Cover[cid] == Built {
			continue
		}
		lc.Cover[cid] = Forest
		nf++
	}
	return lc, nil
}

// buildRoads paints the main road band and its downhill spurs. The main
// road enters at a randomized row near the top edge and advances column by
// column, its row drifting by tanh of a bounded random accumulator.
func buildRoads(t *tem.TEM, lc *LandCover, par Params, rng *rand.Rand) {
	gd := lc.GD
	row := float64(rng.Intn(max(1, gd.Nrow/5)))
	drift := 0.
	var mainRoad []int
	for c := 0; c < gd.Ncol; c++ {
		drift += (rng.Float64()*2. - 1.) * par.Curviness
		if drift > driftBound {
			drift = driftBound
		} else if drift < -driftBound {
			drift = -driftBound
		}
		row += math.Tanh(drift)
		if row < 0. {
			row = 0.
		} else if row > float64(gd.Nrow-1) {
			row = float64(gd.Nrow - 1)
		}
		r0 := int(row)
		for dr := -par.RoadHalfWidth; dr <= par.RoadHalfWidth; dr++ {
			if cid := gd.CellID(r0+dr, c); cid >= 0 {
				lc.paintBuilt(cid, true)
				if dr == 0 {
					mainRoad = append(mainRoad, cid)
				}
			}
		}
	}

	// spurs branch from random main-road cells and walk greedily to the
	// locally lowest neighbour until reaching a pit or existing road
	for s := 0; s < par.SpurCount && len(mainRoad) > 0; s++ {
		cur := mainRoad[rng.Intn(len(mainRoad))]
		for k := 0; k < gd.Nrow+gd.Ncol; k++ {
			nxt := t.TECs[cur].DS
			if nxt < 0 || lc.Road[nxt] {
				break
			}
			lc.paintBuilt(nxt, true)
			cur = nxt
		}
	}
}

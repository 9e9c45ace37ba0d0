package lusg

import (
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/maseology/cnrr/tem"
)

// Scorer ranks the desirability of a cell for a placement pass. Placement
// policy is a strategy: substituting an alternative Scorer changes where
// buildings or forest land without touching routing or runoff logic.
type Scorer interface {
	Score(cid int) float64
}

// ScorerFactory builds a Scorer against the live classification state; the
// cover field evolves as cells are painted, so scorers are constructed after
// roads are placed and read cover through the LandCover reference.
type ScorerFactory func(t *tem.TEM, lc *LandCover, rng *rand.Rand) Scorer

// buildingScorer is the default settlement heuristic: gentle slopes below
// the 60th percentile, adjacency to anything already Built, and a
// low-amplitude noise term to break up the regularity.
type buildingScorer struct {
	t      *tem.TEM
	lc     *LandCover
	prl    *perlin.Perlin
	gthres float64 // 60th-percentile gradient
}

func newBuildingScorer(t *tem.TEM, lc *LandCover, rng *rand.Rand) Scorer {
	return &buildingScorer{
		t:      t,
		lc:     lc,
		prl:    perlin.NewPerlin(2., 2., 3, rng.Int63()),
		gthres: gradPercentile(t, 0.6),
	}
}

func (b *buildingScorer) Score(cid int) float64 {
	s := 0.
	if b.t.TECs[cid].G < b.gthres {
		s += 0.45
	}
	for _, n := range b.lc.GD.Buffer(cid) {
		if b.lc.Cover[n] == Built {
			s += 0.35
			break
		}
	}
	r, c := b.lc.GD.RowCol(cid)
	s += 0.2 * noise01(b.prl, r, c)
	return s
}

// forestScorer is the default forest heuristic: high ground, flat cells,
// exclusion of Built, a heavy discount near roads, and noise.
type forestScorer struct {
	t        *tem.TEM
	lc       *LandCover
	prl      *perlin.Perlin
	zn, zx   float64
	gx       float64
	nearRoad []bool
}

func newForestScorer(t *tem.TEM, lc *LandCover, rng *rand.Rand) Scorer {
	f := &forestScorer{
		t:        t,
		lc:       lc,
		prl:      perlin.NewPerlin(2., 2., 3, rng.Int63()),
		nearRoad: roadHalo(lc, 2),
	}
	f.zn, f.zx, f.gx = t.TECs[0].Z, t.TECs[0].Z, 0.
	for _, c := range t.TECs {
		if c.Z < f.zn {
			f.zn = c.Z
		}
		if c.Z > f.zx {
			f.zx = c.Z
		}
		if c.G > f.gx {
			f.gx = c.G
		}
	}
	return f
}

func (f *forestScorer) Score(cid int) float64 {
	if f.lc.Cover[cid] == Built {
		return 0.
	}
	zrel := 0.
	if f.zx > f.zn {
		zrel = (f.t.TECs[cid].Z - f.zn) / (f.zx - f.zn)
	}
	grel := 1.
	if f.gx > 0. {
		grel = 1. - f.t.TECs[cid].G/f.gx
	}
	r, c := f.lc.GD.RowCol(cid)
	s := 0.35*zrel + 0.3*grel + 0.15*noise01(f.prl, r, c) + 0.2
	if f.nearRoad[cid] {
		s *= 0.25
	}
	return s
}

func noise01(p *perlin.Perlin, row, col int) float64 {
	const freq = 0.11
	return (p.Noise2D(float64(col)*freq, float64(row)*freq) + 1.) / 2.
}

func gradPercentile(t *tem.TEM, q float64) float64 {
	g := make([]float64, len(t.TECs))
	for i, c := range t.TECs {
		g[i] = c.G
	}
	sort.Float64s(g)
	i := int(q * float64(len(g)))
	if i >= len(g) {
		i = len(g) - 1
	}
	return g[i]
}

// roadHalo flags cells within rad cells (chebyshev) of any road cell.
func roadHalo(lc *LandCover, rad int) []bool {
	h := make([]bool, lc.GD.Ncells())
	for i, isrd := range lc.Road {
		if !isrd {
			continue
		}
		r0, c0 := lc.GD.RowCol(i)
		for dr := -rad; dr <= rad; dr++ {
			for dc := -rad; dc <= rad; dc++ {
				if n := lc.GD.CellID(r0+dr, c0+dc); n >= 0 {
					h[n] = true
				}
			}
		}
	}
	return h
}

// scoreAll evaluates every cell once against a fixed snapshot of the
// classification state.
func scoreAll(sc Scorer, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = sc.Score(i)
	}
	return s
}

// rank returns cell ids ordered by descending score, ids ascending on ties
// so that classification is deterministic.
func rank(scores []float64) []int {
	type cs struct {
		cid int
		s   float64
	}
	a := make([]cs, len(scores))
	for i, s := range scores {
		a[i] = cs{i, s}
	}
	sort.Slice(a, func(i, j int) bool {
		if a[i].s != a[j].s {
			return a[i].s > a[j].s
		}
		return a[i].cid < a[j].cid
	})
	ord := make([]int, len(scores))
	for i, v := range a {
		ord[i] = v.cid
	}
	return ord
}

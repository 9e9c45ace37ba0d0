package model

import (
	"math/rand"
	"sync"

	"github.com/maseology/cnrr/grid"
	"github.com/maseology/cnrr/lusg"
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/cnrr/tem"
	"github.com/maseology/cnrr/terrain"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Domain holds the static grids of one configuration: elevation, its D8
// topology, land cover and the derived curve-number field. All are immutable
// once built and exposed read-only between steps.
type Domain struct {
	Scen scenario.Scenario
	GD   *grid.Definition
	Dem  []float64
	TEM  *tem.TEM
	LC   *lusg.LandCover
	CN   *lusg.CNField
}

// synthKey identifies one terrain/cover synthesis; identical keys must
// return the cached grids, not resynthesize.
type synthKey struct {
	nrow, ncol                       int
	cwidth, relief, pers, bias, vall float64
	octaves                          int
	forestfrac, builtfrac, curvi     float64
	spurs, halfwidth                 int
	seed                             int64
}

type synthEntry struct {
	gd  *grid.Definition
	dem []float64
	t   *tem.TEM
	lc  *lusg.LandCover
	cn  map[cnKey]*lusg.CNField
}

type cnKey struct {
	amc   lusg.AMC
	delta float64
}

var (
	synthMu    sync.Mutex
	synthCache = map[synthKey]*synthEntry{}
)

// LoadDomain validates the scenario and assembles its domain. Synthesis is
// memoized by configuration and seed: repeat calls with an identical
// configuration return the cached grids. The curve-number field is likewise
// recomputed only when cover, moisture or design levers change.
func LoadDomain(s scenario.Scenario) (*Domain, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	k := synthKey{
		nrow: s.Nrow, ncol: s.Ncol,
		cwidth: s.CellWidth, relief: s.ReliefScale, pers: s.Persistence,
		bias: s.DirectionalBias, vall: s.ValleyEmphasis,
		octaves:    s.Octaves,
		forestfrac: s.ForestFrac, builtfrac: s.BuiltFrac, curvi: s.Curviness,
		spurs: s.SpurCount, halfwidth: s.RoadHalfWidth,
		seed: s.Seed,
	}

	synthMu.Lock()
	defer synthMu.Unlock()
	e, ok := synthCache[k]
	if !ok {
		var err error
		if e, err = synthesize(s); err != nil {
			return nil, err
		}
		synthCache[k] = e
	}

	ck := cnKey{amc: lusg.ParseAMC(s.Moisture), delta: s.Design.CNDelta()}
	cn, ok := e.cn[ck]
	if !ok {
		cn = lusg.DeriveCN(e.lc, ck.amc, lusg.DefaultCNTable().Adjusted(ck.delta))
		e.cn[ck] = cn
	}

	return &Domain{Scen: s, GD: e.gd, Dem: e.dem, TEM: e.t, LC: e.lc, CN: cn}, nil
}

// synthesize runs the one-time terrain and cover build. The random source
// is constructed once here and passed by reference through synthesis and
// classification; it is never reseeded mid-build.
func synthesize(s scenario.Scenario) (*synthEntry, error) {
	gd, err := grid.NewDefinition(s.Nrow, s.Ncol, s.CellWidth)
	if err != nil {
		return nil, err
	}
	rng := rand.New(mrg63k3a.New())
	rng.Seed(s.Seed)

	dem, err := terrain.Build(terrain.Params{
		Nrow: s.Nrow, Ncol: s.Ncol, Octaves: s.Octaves,
		Persistence:     s.Persistence,
		DirectionalBias: s.DirectionalBias,
		ValleyEmphasis:  s.ValleyEmphasis,
		ReliefScale:     s.ReliefScale,
	}, rng)
	if err != nil {
		return nil, err
	}
	t, err := tem.New(gd, dem)
	if err != nil {
		return nil, err
	}
	lc, err := lusg.Classify(t, lusg.Params{
		ForestFrac: s.ForestFrac, BuiltFrac: s.BuiltFrac,
		Curviness: s.Curviness, SpurCount: s.SpurCount, RoadHalfWidth: s.RoadHalfWidth,
	}, rng)
	if err != nil {
		return nil, err
	}
	return &synthEntry{gd: gd, dem: dem, t: t, lc: lc, cn: map[cnKey]*lusg.CNField{}}, nil
}

// ResetCache drops all memoized syntheses.
func ResetCache() {
	synthMu.Lock()
	defer synthMu.Unlock()
	synthCache = map[synthKey]*synthEntry{}
}

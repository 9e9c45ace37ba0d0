package scenario

import (
	"os"

	"github.com/maseology/cnrr/design"
	"gopkg.in/yaml.v3"
)

// Scenario holds the full input set for one simulation: grid and terrain
// synthesis parameters, land-cover targets, moisture state, and storm
// forcing. One Scenario fully determines one model build; terrain and cover
// synthesis are memoized against it.
type Scenario struct {
	// grid/terrain
	Nrow            int     `yaml:"nrow"`
	Ncol            int     `yaml:"ncol"`
	CellWidth       float64 `yaml:"cellwidth"`   // [m]
	ReliefScale     float64 `yaml:"reliefscale"` // [m]
	Octaves         int     `yaml:"octaves"`
	Persistence     float64 `yaml:"persistence"`
	DirectionalBias float64 `yaml:"directionalbias"`
	ValleyEmphasis  float64 `yaml:"valleyemphasis"`
	Seed            int64   `yaml:"seed"`

	// land cover
	ForestFrac    float64 `yaml:"forestfrac"`
	BuiltFrac     float64 `yaml:"builtfrac"`
	Curviness     float64 `yaml:"curviness"`
	SpurCount     int     `yaml:"spurcount"`
	RoadHalfWidth int     `yaml:"roadhalfwidth"`
	Moisture      string  `yaml:"moisture"` // dry | average | wet

	// storm
	TotalRainfall float64 `yaml:"totalrainfall"` // [mm]
	Nstep         int     `yaml:"nstep"`
	FullStorm     bool    `yaml:"fullstorm"`
	Shape         string  `yaml:"shape"` // uniform | front | peak

	// routing
	FlowFraction  float64 `yaml:"flowfraction"`
	FullStormIter int     `yaml:"fullstormiter"`

	// design levers (optional)
	Design design.Interventions `yaml:"design"`
}

// Default returns a runnable mid-sized scenario.
func Default() Scenario {
	return Scenario{
		Nrow:            120,
		Ncol:            120,
		CellWidth:       10.,
		ReliefScale:     35.,
		Octaves:         5,
		Persistence:     0.55,
		DirectionalBias: 0.4,
		ValleyEmphasis:  0.3,
		Seed:            1324,
		ForestFrac:      0.3,
		BuiltFrac:       0.12,
		Curviness:       0.6,
		SpurCount:       3,
		RoadHalfWidth:   1,
		Moisture:        "average",
		TotalRainfall:   75.,
		Nstep:           24,
		Shape:           "uniform",
		FlowFraction:    0.85,
		FullStormIter:   3,
	}
}

// Load reads a Scenario from a yaml file, layered over defaults.
func Load(fp string) (Scenario, error) {
	s := Default()
	b, err := os.ReadFile(fp)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Validate checks every input eagerly, returning the first
// ConfigurationError found. A Scenario that passes here is trusted by every
// downstream component.
func (s *Scenario) Validate() error {
	if s.Nrow <= 0 || s.Ncol <= 0 {
		return Configf("nrow/ncol", "dimensions must be positive, got %d x %d", s.Nrow, s.Ncol)
	}
	if s.CellWidth <= 0. {
		return Configf("cellwidth", "must be positive, got %g", s.CellWidth)
	}
	if s.ReliefScale <= 0. {
		return Configf("reliefscale", "must be positive, got %g", s.ReliefScale)
	}
	if s.Octaves < 1 {
		return Configf("octaves", "need at least one octave, got %d", s.Octaves)
	}
	if nmin := min(s.Nrow, s.Ncol); 1<<(s.Octaves-1) > nmin/2 {
		return Configf("octaves", "%d octaves infeasible for a %d x %d grid", s.Octaves, s.Nrow, s.Ncol)
	}
	if s.Persistence <= 0. || s.Persistence >= 1. {
		return Configf("persistence", "must lie in (0,1), got %g", s.Persistence)
	}
	if s.DirectionalBias < 0. || s.DirectionalBias > 1. {
		return Configf("directionalbias", "must lie in [0,1], got %g", s.DirectionalBias)
	}
	if s.ValleyEmphasis < 0. || s.ValleyEmphasis > 1. {
		return Configf("valleyemphasis", "must lie in [0,1], got %g", s.ValleyEmphasis)
	}
	if s.ForestFrac < 0. || s.ForestFrac > 1. {
		return Configf("forestfrac", "must lie in [0,1], got %g", s.ForestFrac)
	}
	if s.BuiltFrac < 0. || s.BuiltFrac > 1. {
		return Configf("builtfrac", "must lie in [0,1], got %g", s.BuiltFrac)
	}
	if s.Curviness < 0. {
		return Configf("curviness", "must be non-negative, got %g", s.Curviness)
	}
	if s.SpurCount < 0 {
		return Configf("spurcount", "must be non-negative, got %d", s.SpurCount)
	}
	if s.RoadHalfWidth < 0 {
		return Configf("roadhalfwidth", "must be non-negative, got %d", s.RoadHalfWidth)
	}
	switch s.Moisture {
	case "dry", "average", "wet":
	default:
		return Configf("moisture", "unknown moisture condition %q", s.Moisture)
	}
	if s.TotalRainfall <= 0. {
		return Configf("totalrainfall", "must be positive, got %g", s.TotalRainfall)
	}
	if !s.FullStorm && s.Nstep < 1 {
		return Configf("nstep", "animated runs need at least one step, got %d", s.Nstep)
	}
	switch s.Shape {
	case "uniform", "front", "peak":
	default:
		return Configf("shape", "unknown hyetograph shape %q", s.Shape)
	}
	if s.FlowFraction <= 0. || s.FlowFraction >= 1. {
		return Configf("flowfraction", "must lie in (0,1), got %g", s.FlowFraction)
	}
	if s.FullStormIter < 1 {
		return Configf("fullstormiter", "must be positive, got %d", s.FullStormIter)
	}
	if err := s.Design.Check(); err != nil {
		return Configf("design", "%v", err)
	}
	return nil
}

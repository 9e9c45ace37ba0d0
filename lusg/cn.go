package lusg

// Curve-number bounds. The upper bound keeps S = 25400/CN - 254 away from
// its singularity at CN = 100.
const (
	CNmin = 30.
	CNmax = 98.
)

// AMC antecedent moisture condition
type AMC int

// moisture conditions; Average is AMC-II
const (
	Dry AMC = iota
	Average
	Wet
)

// ParseAMC maps a scenario moisture string to its condition; unknown
// strings fall back to Average.
func ParseAMC(s string) AMC {
	switch s {
	case "dry":
		return Dry
	case "wet":
		return Wet
	default:
		return Average
	}
}

// adjustment applied uniformly to the baseline (AMC-II) curve numbers
func (a AMC) adjustment() float64 {
	switch a {
	case Dry:
		return -5.
	case Wet:
		return 5.
	default:
		return 0.
	}
}

// CNTable holds baseline (AMC-II) curve numbers per cover class.
type CNTable struct {
	Forest, Ground, Built float64
}

// DefaultCNTable returns the standard baselines.
func DefaultCNTable() CNTable {
	return CNTable{Forest: 60., Ground: 78., Built: 95.}
}

// Adjusted returns a copy with every baseline reduced by delta (design
// interventions lower the effective CN; the clip at derivation bounds it).
func (t CNTable) Adjusted(delta float64) CNTable {
	return CNTable{Forest: t.Forest - delta, Ground: t.Ground - delta, Built: t.Built - delta}
}

func (t CNTable) of(c CoverType) float64 {
	switch c {
	case Forest:
		return t.Forest
	case Built:
		return t.Built
	default:
		return t.Ground
	}
}

// CNField holds the derived per-cell runoff parameters: curve number, the
// potential maximum retention S [mm] and the initial abstraction Ia [mm].
// Recomputed only when cover or moisture changes, never per time step.
type CNField struct {
	CN, S, Ia []float64
}

// DeriveCN maps land cover and moisture state to per-cell runoff
// parameters. The final CN is clipped to [CNmin, CNmax] before S and Ia are
// computed, so downstream components never see numerically invalid inputs.
func DeriveCN(lc *LandCover, amc AMC, tbl CNTable) *CNField {
	nc := lc.GD.Ncells()
	f := &CNField{
		CN: make([]float64, nc),
		S:  make([]float64, nc),
		Ia: make([]float64, nc),
	}
	adj := amc.adjustment()
	for i, c := range lc.Cover {
		cn := tbl.of(c) + adj
		if cn < CNmin {
			cn = CNmin
		} else if cn > CNmax {
			cn = CNmax
		}
		s := 25400./cn - 254.
		f.CN[i] = cn
		f.S[i] = s
		f.Ia[i] = 0.2 * s
	}
	return f
}

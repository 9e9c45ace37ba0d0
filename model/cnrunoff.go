package model

import "github.com/maseology/cnrr/lusg"

// scsQ returns the SCS curve-number runoff depth [mm] generated by a
// cumulative rainfall depth p against retention s and initial abstraction ia.
func scsQ(p, s, ia float64) float64 {
	if p <= ia {
		return 0.
	}
	return (p - ia) * (p - ia) / (p - ia + s)
}

// cnRunoff converts cumulative rainfall to incremental per-cell runoff.
// Every cell is evaluated independently against its own retention
// parameters; there is no spatial averaging.
type cnRunoff struct {
	s, ia []float64
	cum   []float64 // cumulative rainfall [mm], monotone within a run
}

func newCNRunoff(cn *lusg.CNField) *cnRunoff {
	return &cnRunoff{
		s:   cn.S,
		ia:  cn.Ia,
		cum: make([]float64, len(cn.S)),
	}
}

// step applies one rainfall increment [mm] and returns the per-cell
// incremental runoff ΔQ. Every cell is read against the same snapshot of
// prior cumulative rainfall, and ΔQ is floored at zero so cumulative runoff
// stays monotone under floating-point noise.
func (m *cnRunoff) step(incr float64) []float64 {
	dq := make([]float64, len(m.cum))
	for i, p0 := range m.cum {
		q0 := scsQ(p0, m.s[i], m.ia[i])
		p1 := p0 + incr
		q1 := scsQ(p1, m.s[i], m.ia[i])
		d := q1 - q0
		if d < 0. {
			d = 0.
		}
		m.cum[i] = p1
		dq[i] = d
	}
	return dq
}

// cumRunoff returns the per-cell cumulative runoff for the rainfall applied
// so far.
func (m *cnRunoff) cumRunoff() []float64 {
	q := make([]float64, len(m.cum))
	for i, p := range m.cum {
		q[i] = scsQ(p, m.s[i], m.ia[i])
	}
	return q
}

func (m *cnRunoff) reset() {
	for i := range m.cum {
		m.cum[i] = 0.
	}
}

package model

import (
	"testing"

	"github.com/maseology/cnrr/grid"
	"github.com/maseology/cnrr/lusg"
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/cnrr/tem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatDomain builds an n x n all-ground domain over zero elevation with a
// single curve number everywhere.
func flatDomain(t *testing.T, n int, cnval float64) *Domain {
	gd, err := grid.NewDefinition(n, n, 10.)
	require.NoError(t, err)
	z := make([]float64, gd.Ncells())
	tm, err := tem.New(gd, z)
	require.NoError(t, err)
	lc := &lusg.LandCover{
		GD:    gd,
		Cover: make([]lusg.CoverType, gd.Ncells()),
		Road:  make([]bool, gd.Ncells()),
	}
	cn := lusg.DeriveCN(lc, lusg.Average, lusg.CNTable{Forest: cnval, Ground: cnval, Built: cnval})

	s := scenario.Default()
	s.Nrow, s.Ncol = n, n
	return &Domain{Scen: s, GD: gd, Dem: z, TEM: tm, LC: lc, CN: cn}
}

func TestNoRunoffBelowAbstraction(t *testing.T) {
	dom := flatDomain(t, 5, 78.)
	ro := newCNRunoff(dom.CN)
	ia := dom.CN.Ia[0]

	dq := ro.step(ia) // cumulative P == Ia exactly
	for i, d := range dq {
		assert.Zero(t, d, "cell %d: Q(P<=Ia) must be exactly zero", i)
	}
	for _, q := range ro.cumRunoff() {
		assert.Zero(t, q)
	}
}

func TestSCSDepth(t *testing.T) {
	// CN 78: S = 25400/78 - 254, Ia = 0.2 S
	s := 25400./78. - 254.
	ia := 0.2 * s
	assert.InDelta(t, 71.67, s, 0.05)
	assert.InDelta(t, 14.33, ia, 0.05)

	q := scsQ(50., s, ia)
	assert.InDelta(t, (50.-ia)*(50.-ia)/(50.-ia+s), q, 1e-12)
	assert.InDelta(t, 11.9, q, 0.5)
	assert.Zero(t, scsQ(ia, s, ia))
	assert.Zero(t, scsQ(0., s, ia))
}

func TestIncrementalMonotone(t *testing.T) {
	dom := flatDomain(t, 4, 85.)
	ro := newCNRunoff(dom.CN)

	cum, prevP := 0., 0.
	for k := 0; k < 30; k++ {
		dq := ro.step(2.5)
		for i, d := range dq {
			assert.GreaterOrEqual(t, d, 0., "step %d cell %d", k, i)
		}
		assert.Greater(t, ro.cum[0], prevP, "cumulative rainfall must increase")
		prevP = ro.cum[0]
		cum += dq[0]
	}
	// incremental runoff sums to the closed-form cumulative value
	assert.InDelta(t, scsQ(75., dom.CN.S[0], dom.CN.Ia[0]), cum, 1e-9)
	assert.InDelta(t, ro.cumRunoff()[0], cum, 1e-9)
}

func TestSplitEqualsFullStorm(t *testing.T) {
	// the incremental form is exact: N small steps equal one large one
	dom := flatDomain(t, 3, 78.)
	a, b := newCNRunoff(dom.CN), newCNRunoff(dom.CN)

	tot := 0.
	for k := 0; k < 20; k++ {
		for _, d := range a.step(2.5) {
			tot += d
		}
	}
	tot /= float64(dom.GD.Ncells())
	full := b.step(50.)
	assert.InDelta(t, full[0], tot, 1e-9)
}

func TestRunoffReset(t *testing.T) {
	dom := flatDomain(t, 3, 78.)
	ro := newCNRunoff(dom.CN)
	ro.step(40.)
	ro.reset()
	assert.Zero(t, ro.cum[0])
	assert.Zero(t, ro.cumRunoff()[0])
}

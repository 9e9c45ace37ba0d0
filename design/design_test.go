package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		n    Interventions
		ok   bool
	}{
		{"zero value", Interventions{}, true},
		{"all engaged", Interventions{TankM3: 5., VetiverRows: 2, HugelLenM: 40., HugelHeightM: 0.8, PavAreaM2: 500., Years: 2}, true},
		{"negative tank", Interventions{TankM3: -1.}, false},
		{"negative rows", Interventions{VetiverRows: -1}, false},
		{"negative mound", Interventions{HugelLenM: -4.}, false},
		{"negative pavement", Interventions{PavAreaM2: -0.1}, false},
		{"negative years", Interventions{Years: -3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.n.Check()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAny(t *testing.T) {
	assert.False(t, (&Interventions{}).Any())
	assert.False(t, (&Interventions{Years: 5}).Any(), "settling age alone engages nothing")
	assert.True(t, (&Interventions{TankM3: 1.}).Any())
	assert.True(t, (&Interventions{VetiverRows: 1}).Any())
	assert.True(t, (&Interventions{HugelLenM: 10.}).Any())
	assert.True(t, (&Interventions{PavAreaM2: 20.}).Any())
}

func TestCNDelta(t *testing.T) {
	n := &Interventions{PavAreaM2: 500., VetiverRows: 2}
	assert.Equal(t, 14., n.CNDelta(), "pavement 8 plus 3 per vetiver row")

	n = &Interventions{VetiverRows: 7}
	assert.Equal(t, 10., n.CNDelta(), "vetiver contribution saturates")

	n = &Interventions{TankM3: 50.}
	assert.Zero(t, n.CNDelta(), "tanks capture volume, they do not change infiltration")
}

func TestHugelStorage(t *testing.T) {
	n := &Interventions{HugelLenM: 40., HugelHeightM: 0.8, Years: 2}
	// 0.5 * (0.8*1.8) * 0.8 * 40 = 23.04 m³ at porosity 0.55*(1-0.10)
	assert.InDelta(t, 11.4048, n.HugelStorageM3(), 1e-9)

	n.Years = 20
	assert.InDelta(t, 23.04*0.25, n.HugelStorageM3(), 1e-9, "porosity floors at 0.25")

	assert.Zero(t, (&Interventions{HugelHeightM: 0.8}).HugelStorageM3(), "no length, no mound")
}

func TestCascade(t *testing.T) {
	n := &Interventions{TankM3: 20., VetiverRows: 2, HugelLenM: 40., HugelHeightM: 0.8, PavAreaM2: 500., Years: 2}
	c := n.Cascade(100., 40., 4.)

	assert.InDelta(t, 20., c.TankM3, 1e-9, "rooftop share 35 m³ overfills the 20 m³ tank")
	assert.InDelta(t, 11.4048, c.HugelM3, 1e-9, "mound fills to capacity")
	assert.InDelta(t, n.PavStorageM3(), c.PavM3, 1e-9)

	rem := 40. - 20. - 11.4048 - n.PavStorageM3()
	assert.InDelta(t, rem, c.FinalRunoffM3, 1e-9)
	assert.InDelta(t, rem+c.CapturedM3(), 40., 1e-9, "the cascade conserves the runoff volume")

	assert.InDelta(t, rem*1000./3600.*0.9, c.PeakProxyLps, 1e-9, "two vetiver rows shave the peak by 10%")
	assert.InDelta(t, rem*4./5.*0.8, c.ErosionIndex, 1e-9)
}

func TestCascadeTankSwallowsStorm(t *testing.T) {
	n := &Interventions{TankM3: 1000.}
	c := n.Cascade(100., 30., 4.)
	require.InDelta(t, 35., c.TankM3, 1e-9, "tank takes the full rooftop share of the rainfall")
	assert.Zero(t, c.FinalRunoffM3, "rooftop capture exceeds the generated runoff")
	assert.Zero(t, c.ErosionIndex)
}

func TestCascadeNoVetiverNoShaving(t *testing.T) {
	n := &Interventions{TankM3: 5.}
	c := n.Cascade(100., 40., 10.)
	rem := 40. - 5.
	assert.InDelta(t, rem*1000./3600., c.PeakProxyLps, 1e-9)
	assert.InDelta(t, rem*10./5., c.ErosionIndex, 1e-9)
}

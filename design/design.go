// Package design holds planning-level water-design interventions applied on
// top of a simulated storm: rainwater tanks, vetiver strips, hügelkultur
// mounds and permeable pavement. Effects are two-fold: a reduction to the
// effective curve number before runoff is generated, and a storage cascade
// that captures part of the generated runoff volume.
package design

import "fmt"

// fraction of site rainfall assumed to fall on rooftops and reach the tank
const rooftopFrac = 0.35

// Interventions is the set of design levers for a scenario.
type Interventions struct {
	TankM3       float64 `yaml:"tankm3"`       // rainwater tank volume [m³]
	VetiverRows  int     `yaml:"vetiverrows"`  // grass strip rows across the slope
	HugelLenM    float64 `yaml:"hugellenm"`    // hügelkultur mound length [m]
	HugelHeightM float64 `yaml:"hugelheightm"` // mound height [m]
	PavAreaM2    float64 `yaml:"pavaream2"`    // permeable pavement area [m²]
	Years        int     `yaml:"years"`        // years since installation (mound settling)
}

// Check validates the levers.
func (n *Interventions) Check() error {
	if n.TankM3 < 0. {
		return fmt.Errorf("tank volume must be non-negative, got %g", n.TankM3)
	}
	if n.VetiverRows < 0 {
		return fmt.Errorf("vetiver rows must be non-negative, got %d", n.VetiverRows)
	}
	if n.HugelLenM < 0. || n.HugelHeightM < 0. {
		return fmt.Errorf("hügelkultur dimensions must be non-negative, got %g x %g", n.HugelLenM, n.HugelHeightM)
	}
	if n.PavAreaM2 < 0. {
		return fmt.Errorf("pavement area must be non-negative, got %g", n.PavAreaM2)
	}
	if n.Years < 0 {
		return fmt.Errorf("years must be non-negative, got %d", n.Years)
	}
	return nil
}

// Any reports whether any lever is engaged.
func (n *Interventions) Any() bool {
	return n.TankM3 > 0. || n.VetiverRows > 0 || n.HugelLenM > 0. || n.PavAreaM2 > 0.
}

// CNDelta returns the total curve-number reduction from pavement and vetiver.
// Lower CN means more infiltration; the caller clips the adjusted CN to its
// valid range.
func (n *Interventions) CNDelta() float64 {
	d := 0.
	if n.PavAreaM2 > 0. {
		d += 8.
	}
	v := float64(n.VetiverRows) * 3.
	if v > 10. {
		v = 10.
	}
	return d + v
}

// HugelStorageM3 returns the effective storage of the mound: triangular
// cross-section, initial porosity 0.55 decaying 5%/yr, floored at 0.25.
func (n *Interventions) HugelStorageM3() float64 {
	width := n.HugelHeightM * 1.8
	vol := 0.5 * width * n.HugelHeightM * n.HugelLenM
	porosity := 0.55 * (1. - 0.05*float64(n.Years))
	if porosity < 0.25 {
		porosity = 0.25
	}
	return vol * porosity
}

// PavStorageM3 returns the pavement reservoir volume (80 mm equivalent).
func (n *Interventions) PavStorageM3() float64 {
	return 0.08 * n.PavAreaM2 / 1000.
}

// Capture is the volume budget of one storm passed through the cascade.
type Capture struct {
	TankM3, HugelM3, PavM3 float64 // storage used, in cascade order
	FinalRunoffM3          float64 // residual outflow after interventions
	PeakProxyLps           float64 // indicative peak discharge [L/s]
	ErosionIndex           float64 // residual runoff × slope × cover factor
}

// CapturedM3 is the total storage used.
func (c *Capture) CapturedM3() float64 { return c.TankM3 + c.HugelM3 + c.PavM3 }

// Cascade routes a storm's volumes through the storage chain
// tank → hügelkultur → pavement. rainM3 is the site rainfall volume, runoffM3
// the generated runoff volume, slopePct the mean catchment slope in percent.
func (n *Interventions) Cascade(rainM3, runoffM3, slopePct float64) Capture {
	tankin := rainM3 * rooftopFrac
	tank := tankin
	if tank > n.TankM3 {
		tank = n.TankM3
	}

	rem := runoffM3 - tank
	if rem < 0. {
		rem = 0.
	}
	hugel := rem
	if hcap := n.HugelStorageM3(); hugel > hcap {
		hugel = hcap
	}
	rem -= hugel

	pav := rem
	if pcap := n.PavStorageM3(); pav > pcap {
		pav = pcap
	}
	rem -= pav

	peakfct := 1. - 0.05*float64(n.VetiverRows)
	if peakfct < 0.7 {
		peakfct = 0.7
	}
	erofct := 1. - 0.1*float64(n.VetiverRows)
	if erofct < 0.6 {
		erofct = 0.6
	}

	return Capture{
		TankM3:        tank,
		HugelM3:       hugel,
		PavM3:         pav,
		FinalRunoffM3: rem,
		PeakProxyLps:  rem * 1000. / 3600. * peakfct, // m³ over ~1hr
		ErosionIndex:  rem * slopePct / 5. * erofct,
	}
}

package model

import (
	"fmt"

	"github.com/maseology/cnrr/design"
	"github.com/maseology/cnrr/scenario"
	"gonum.org/v1/gonum/floats"
)

// Summary holds the scalar outputs of a completed run.
type Summary struct {
	RainfallMM   float64 // storm depth applied
	MeanRunoffMM float64
	MeanInfilMM  float64
	TotRunoffM3  float64
	TotInfilM3   float64
	MaxPondMM    float64
	ForestFrac, GroundFrac, BuiltFrac float64

	// design levers, when engaged
	Capture *design.Capture
}

// Summarize computes the run's summary scalars. Infiltration is the
// cumulative rainfall not converted to runoff; volumes scale depths by the
// cell area.
func (k *Controller) Summarize() (*Summary, error) {
	switch k.state {
	case Completed, Cancelled:
	default:
		return nil, &scenario.StateError{Op: "summarize", State: k.state.String()}
	}

	cumQ := k.ro.cumRunoff()
	cumP := k.ro.cum
	infil := make([]float64, len(cumP))
	for i := range infil {
		infil[i] = cumP[i] - cumQ[i]
	}

	gd := k.dom.GD
	fn := float64(gd.Ncells())
	mm2m3 := gd.CellArea() / 1000. // depth [mm] over one cell to volume [m³]

	s := &Summary{
		RainfallMM:   floats.Sum(cumP) / fn,
		MeanRunoffMM: floats.Sum(cumQ) / fn,
		MeanInfilMM:  floats.Sum(infil) / fn,
		TotRunoffM3:  floats.Sum(cumQ) * mm2m3,
		TotInfilM3:   floats.Sum(infil) * mm2m3,
		MaxPondMM:    floats.Max(k.pond),
	}
	s.ForestFrac, s.GroundFrac, s.BuiltFrac = k.dom.LC.Fractions()

	if n := &k.dom.Scen.Design; n.Any() {
		rainM3 := floats.Sum(cumP) * mm2m3
		c := n.Cascade(rainM3, s.TotRunoffM3, k.dom.TEM.MeanGradPct())
		s.Capture = &c
	}
	return s, nil
}

// Print writes the summary to stdout the way the builders report.
func (s *Summary) Print() {
	fmt.Printf(" storm depth:        %8.1f mm\n", s.RainfallMM)
	fmt.Printf(" mean runoff:        %8.1f mm  (%.0f m³)\n", s.MeanRunoffMM, s.TotRunoffM3)
	fmt.Printf(" mean infiltration:  %8.1f mm  (%.0f m³)\n", s.MeanInfilMM, s.TotInfilM3)
	fmt.Printf(" max ponded depth:   %8.1f mm\n", s.MaxPondMM)
	fmt.Printf(" cover: %.0f%% forest, %.0f%% ground, %.0f%% built\n",
		s.ForestFrac*100., s.GroundFrac*100., s.BuiltFrac*100.)
	if s.Capture != nil {
		fmt.Printf(" captured:           %8.1f m³ (tank %.1f, hügel %.1f, pavement %.1f)\n",
			s.Capture.CapturedM3(), s.Capture.TankM3, s.Capture.HugelM3, s.Capture.PavM3)
		fmt.Printf(" residual runoff:    %8.1f m³;  peak ~%.1f L/s;  erosion index %.2f\n",
			s.Capture.FinalRunoffM3, s.Capture.PeakProxyLps, s.Capture.ErosionIndex)
	}
}

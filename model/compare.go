package model

import "github.com/maseology/objfunc"

// Metrics scores the agreement of two step hydrographs, used to compare a
// design scenario against its baseline.
type Metrics struct {
	NSE, KGE, Bias float64
}

// Compare evaluates a scenario hydrograph against a baseline. Both must
// come from runs with the same step count.
func Compare(baseline, scen []float64) Metrics {
	return Metrics{
		NSE:  objfunc.NSE(baseline, scen),
		KGE:  objfunc.KGE(baseline, scen),
		Bias: objfunc.Bias(baseline, scen),
	}
}

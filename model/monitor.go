package model

import (
	"fmt"

	"github.com/maseology/mmio"
)

// SaveSnapshot writes a snapshot's dynamic grids and the elevation it was
// built over to dir, one flat float file per field. Persistence is the
// collaborator's concern; this is the default file-writing publisher used by
// the mains.
func SaveSnapshot(dir string) Publisher {
	mmio.MakeDir(dir)
	return func(s Snapshot) {
		prfx := fmt.Sprintf("%s/step%03d.", dir, s.Step)
		if s.Step == 1 || s.Final {
			mmio.WriteFloats(prfx+"elev.f64", s.Elev)
			mmio.WriteFloats(prfx+"cn.f64", s.CN)
		}
		mmio.WriteFloats(prfx+"pond.f64", s.Pond)
		if s.Final {
			mmio.WriteFloats(prfx+"cumrain.f64", s.CumRain)
		}
	}
}

// SaveHydrograph writes the per-step mean runoff series.
func SaveHydrograph(fp string, hyd []float64) {
	mmio.WriteFloats(fp, hyd)
}

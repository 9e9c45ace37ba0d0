package main

import (
	"fmt"
	"log"
	"os"

	"github.com/maseology/cnrr/model"
	"github.com/maseology/cnrr/scenario"
	"github.com/maseology/mmio"
)

const outdir = "out"

func main() {
	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nrun complete")

	s := scenario.Default()
	if len(os.Args) > 1 {
		var err error
		if s, err = scenario.Load(os.Args[1]); err != nil {
			log.Fatalf(" scenario load: %v", err)
		}
	}

	// build grids (memoized by configuration)
	dom, err := model.LoadDomain(s)
	if err != nil {
		log.Fatalf(" domain build: %v", err)
	}
	tt.Print("domain build complete")
	nf, ng, nb := dom.LC.Counts()
	fmt.Printf(" %d x %d cells; cover: %d forest, %d ground, %d built (%d road)\n",
		s.Nrow, s.Ncol, nf, ng, nb, dom.LC.NRoad())

	// animated run, publishing step grids
	k := model.NewController(dom, model.SaveSnapshot(outdir))
	if err := k.Run(); err != nil {
		log.Fatalf(" run: %v", err)
	}
	model.SaveHydrograph(outdir+"/hyd.f64", k.Hydrograph())
	tt.Print("storm routed")

	smry, err := k.Summarize()
	if err != nil {
		log.Fatalf(" summary: %v", err)
	}
	fmt.Println("")
	smry.Print()

	// baseline comparison when design levers are engaged
	if s.Design.Any() {
		s0 := s
		s0.Design = scenario.Default().Design
		dom0, err := model.LoadDomain(s0)
		if err != nil {
			log.Fatalf(" baseline build: %v", err)
		}
		k0 := model.NewController(dom0, nil)
		if err := k0.Run(); err != nil {
			log.Fatalf(" baseline run: %v", err)
		}
		m := model.Compare(k0.Hydrograph(), k.Hydrograph())
		fmt.Printf("\n against baseline: NSE %.3f  KGE %.3f  bias %.3f\n", m.NSE, m.KGE, m.Bias)
	}
}

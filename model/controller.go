package model

import (
	"github.com/gosuri/uiprogress"
	"github.com/maseology/cnrr/forcing"
	"github.com/maseology/cnrr/lusg"
	"github.com/maseology/cnrr/scenario"
	"gonum.org/v1/gonum/floats"
)

// State is the controller's run state.
type State int

// controller states
const (
	Idle State = iota
	Running
	Paused
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Snapshot is the read-only grid state published to external renderers at a
// step boundary. Slices are copies; collaborators may hold them across
// steps.
type Snapshot struct {
	Step, Nstep   int
	Final         bool
	Elev, CN      []float64
	Cover         []lusg.CoverType
	CumRain, Pond []float64
}

// Publisher receives step snapshots; rendering/persistence are the
// collaborator's business.
type Publisher func(Snapshot)

// Controller orchestrates full-storm or animated multi-step runs. It owns
// every mutable grid for the run's duration; the ponding field is mutated
// exactly once per step by the router.
type Controller struct {
	dom *Domain
	frc *forcing.Forcing
	pub Publisher

	state  State
	step   int
	ro     *cnRunoff
	rt     *router
	pond   []float64
	hyd    []float64 // mean incremental runoff per step [mm]
	cancel bool
}

// NewController builds a controller over a loaded domain. pub may be nil.
func NewController(dom *Domain, pub Publisher) *Controller {
	return &Controller{dom: dom, pub: pub, state: Idle}
}

// State returns the current run state.
func (k *Controller) State() State { return k.state }

// Pond exposes the ponding grid read-only between steps.
func (k *Controller) Pond() []float64 { return k.pond }

// Hydrograph returns the mean incremental runoff per completed step [mm].
func (k *Controller) Hydrograph() []float64 { return k.hyd }

// Start readies a run: forcing built, cumulative rainfall and ponding
// reset. A failed Start leaves the controller Idle with nothing published.
func (k *Controller) Start() error {
	if k.state != Idle {
		return &scenario.StateError{Op: "start", State: k.state.String()}
	}
	s := &k.dom.Scen
	var err error
	if s.FullStorm {
		k.frc = forcing.FullStorm(s.TotalRainfall)
	} else if k.frc, err = forcing.Hyetograph(s.TotalRainfall, s.Nstep, s.Shape); err != nil {
		return err
	}
	k.ro = newCNRunoff(k.dom.CN)
	k.rt = newRouter(k.dom.TEM)
	k.pond = make([]float64, k.dom.GD.Ncells())
	k.hyd = make([]float64, 0, k.frc.Nstep())
	k.step = 0
	k.cancel = false
	k.state = Running
	return nil
}

// Step advances one time step: one runoff pass over the whole grid against
// a single rainfall snapshot, then routing. In full-storm mode the single
// step runs the router for the larger fixed iteration count; animated steps
// run one sweep each. The resulting state is published and the cooperative
// cancel signal is honoured at the boundary only. Returns true when the run
// has finished.
func (k *Controller) Step() (bool, error) {
	if k.state != Running {
		return false, &scenario.StateError{Op: "step", State: k.state.String()}
	}

	s := &k.dom.Scen
	iter := 1
	if s.FullStorm {
		iter = s.FullStormIter
	}
	dq := k.ro.step(k.frc.P[k.step])
	if err := k.rt.route(dq, k.pond, s.FlowFraction, iter); err != nil {
		return false, err
	}
	k.step++
	k.hyd = append(k.hyd, floats.Sum(dq)/float64(len(dq)))

	done := k.step >= k.frc.Nstep()
	if k.cancel {
		// the just-completed step is the last fully-consistent state
		k.state = Cancelled
		k.publish(true)
		return true, nil
	}
	if done {
		k.state = Completed
	}
	k.publish(done)
	return done, nil
}

// Pause suspends step advancement; grids are untouched.
func (k *Controller) Pause() error {
	if k.state != Running {
		return &scenario.StateError{Op: "pause", State: k.state.String()}
	}
	k.state = Paused
	return nil
}

// Resume continues a paused run.
func (k *Controller) Resume() error {
	if k.state != Paused {
		return &scenario.StateError{Op: "resume", State: k.state.String()}
	}
	k.state = Running
	return nil
}

// Cancel requests a cooperative stop. A running step finishes first; the
// last fully-completed step's state is published as final. Cancelling a
// paused run takes effect immediately.
func (k *Controller) Cancel() error {
	switch k.state {
	case Running:
		k.cancel = true
		return nil
	case Paused:
		k.state = Cancelled
		k.publish(true)
		return nil
	default:
		return &scenario.StateError{Op: "cancel", State: k.state.String()}
	}
}

// Reset returns a finished or cancelled controller to Idle. The next Start
// reseeds nothing: terrain and cover stay memoized; only run state clears.
func (k *Controller) Reset() error {
	switch k.state {
	case Completed, Cancelled:
		k.state = Idle
		k.step = 0
		return nil
	default:
		return &scenario.StateError{Op: "reset", State: k.state.String()}
	}
}

// Run drives a started run to completion with a progress bar, the animated
// loop's convenience wrapper.
func (k *Controller) Run() error {
	if err := k.Start(); err != nil {
		return err
	}
	uiprogress.Start()
	bar := uiprogress.AddBar(k.frc.Nstep()).AppendCompleted().PrependElapsed()
	for {
		done, err := k.Step()
		if err != nil {
			return err
		}
		bar.Incr()
		if done {
			break
		}
	}
	uiprogress.Stop()
	return nil
}

func (k *Controller) publish(final bool) {
	if k.pub == nil {
		return
	}
	k.pub(Snapshot{
		Step:    k.step,
		Nstep:   k.frc.Nstep(),
		Final:   final,
		Elev:    append([]float64(nil), k.dom.Dem...),
		CN:      append([]float64(nil), k.dom.CN.CN...),
		Cover:   append([]lusg.CoverType(nil), k.dom.LC.Cover...),
		CumRain: append([]float64(nil), k.ro.cum...),
		Pond:    append([]float64(nil), k.pond...),
	})
}

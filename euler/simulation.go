package euler

import (
	"fmt"
	"sync/atomic"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/mesh"
	"github.com/alessio26gas/eulerfv/utils"
)

// Status tracks solver progress. The stop flag may be set from any
// goroutine, typically a signal handler, to end the run after the
// current iteration.
type Status struct {
	Iteration int
	Time      float64
	Dt        float64
	CFL       float64

	stopped atomic.Bool
}

// Stop requests a graceful end of the run.
func (s *Status) Stop() { s.stopped.Store(true) }

// Stopped reports whether a stop was requested.
func (s *Status) Stopped() bool { return s.stopped.Load() }

// Writer persists solver state. The output package provides the file
// based implementation; tests substitute lighter ones.
type Writer interface {
	SaveSolution(sim *Simulation) error
	SaveRestart(sim *Simulation) error
	LoadRestart(sim *Simulation) error
	InitProbes(sim *Simulation) error
	InitReports(sim *Simulation) error
	SaveProbes(sim *Simulation) error
	SaveReports(sim *Simulation) error
	Close() error
}

// Simulation owns the solver state and the numerical strategies
// resolved from the configuration.
type Simulation struct {
	Input  *input.Input
	Mesh   *mesh.Mesh
	Fields Fields
	Status Status

	Log    logging.Logger
	Writer Writer

	pm *utils.PartitionMap

	limiter     LimiterFunc
	riemann     RiemannFunc
	reconstruct func(*Simulation)
}

// NewSimulation resolves the configured numerical strategies and
// partitions the element range for the worker pool.
func NewSimulation(in *input.Input, m *mesh.Mesh, log logging.Logger, w Writer) (*Simulation, error) {
	sim := &Simulation{
		Input:  in,
		Mesh:   m,
		Log:    log,
		Writer: w,
	}

	var err error
	if sim.limiter, err = limiterFor(in.Numerical.Limiter); err != nil {
		return nil, err
	}
	if sim.riemann, err = riemannFor(in.Numerical.Riemann); err != nil {
		return nil, err
	}
	switch in.Numerical.Reconstruction {
	case input.ReconstructionConstant:
		sim.reconstruct = (*Simulation).constantReconstruction
	case input.ReconstructionMUSCL:
		sim.reconstruct = (*Simulation).musclReconstruction
	default:
		return nil, fmt.Errorf("unknown reconstruction scheme %d", in.Numerical.Reconstruction)
	}

	sim.pm = utils.NewPartitionMap(in.Numerical.NThreads, m.NElements)

	return sim, nil
}

// facePartition returns a partition map over faces with the same
// parallel degree as the element partition.
func (sim *Simulation) facePartition() *utils.PartitionMap {
	return utils.NewPartitionMap(sim.pm.ParallelDegree, sim.Mesh.NFaces)
}

// Preprocess allocates fields, applies mesh adjustments, sets initial
// and boundary conditions, and writes the initial state.
func (sim *Simulation) Preprocess() error {
	in := sim.Input

	sim.Log.Debug("initializing fields")
	sim.Fields.Init(sim.Mesh, in, sim.Log)
	sim.Log.Info("fields initialized")

	if in.Physics.Dimension == input.DimAxisymmetric {
		sim.initAxisymmetry()
		sim.Log.Info("simulation set to axisymmetric mode")
	}

	sim.Log.Debug("setting initial conditions")
	if err := sim.setInitialConditions(); err != nil {
		return err
	}
	sim.Log.Info("initial conditions set")

	sim.Log.Debug("initializing boundary conditions")
	if err := sim.initBoundaries(); err != nil {
		return err
	}
	sim.Log.Info("boundary conditions set")

	if len(in.Output.Probes) > 0 {
		if err := sim.Writer.InitProbes(sim); err != nil {
			return err
		}
	}
	if len(in.Output.Reports) > 0 {
		if err := sim.Writer.InitReports(sim); err != nil {
			return err
		}
	}

	sim.Log.Debug("writing initial conditions")
	return sim.Writer.SaveSolution(sim)
}

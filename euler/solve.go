package euler

import (
	"fmt"
	"time"
)

// Solve runs the explicit time marching loop until the iteration or
// time budget is exhausted or a stop is requested. Each iteration
// snapshots the solution, fixes the timestep and sources, then runs
// the configured number of stages of gradient evaluation,
// reconstruction, flux computation, boundary treatment, update and
// correction.
func (sim *Simulation) Solve() error {
	start := time.Now()

	in := sim.Input
	f := &sim.Fields
	status := &sim.Status
	out := &in.Output

	for status.Iteration < in.Numerical.MaxIter &&
		status.Time < in.Numerical.MaxTime &&
		!status.Stopped() {
		status.Iteration++
		f.PrepareSolutionUpdate()

		sim.updateTimestep()
		sim.updateSources()

		for stage := 0; stage < in.Numerical.TimeStages; stage++ {
			sim.computeGradients()
			sim.reconstruct(sim)

			sim.computeFluxes()
			sim.applyBoundaryConditions()

			sim.advanceSolution(stage)

			if err := sim.applyCorrections(); err != nil {
				return err
			}
		}

		iter := status.Iteration
		if out.PrintsInfoDelay > 0 && (iter-1)%out.PrintsInfoDelay == 0 {
			fmt.Printf("%12s %14s %14s %14s %14s %14s %14s\n",
				"iter", "time", "rhs0", "rhs1", "rhs2", "rhs3", "rhs4")
		}
		if out.PrintsDelay > 0 && iter%out.PrintsDelay == 0 {
			res := f.Residuals()
			fmt.Printf("%12d %14.6e %14.6e %14.6e %14.6e %14.6e %14.6e\n",
				iter, status.Time, res[0], res[1], res[2], res[3], res[4])
		}

		if out.ProbeDelay > 0 && iter%out.ProbeDelay == 0 {
			if err := sim.Writer.SaveProbes(sim); err != nil {
				return err
			}
		}
		if out.ReportDelay > 0 && iter%out.ReportDelay == 0 {
			if err := sim.Writer.SaveReports(sim); err != nil {
				return err
			}
		}
		if out.OutputDelay > 0 && iter%out.OutputDelay == 0 {
			if err := sim.Writer.SaveSolution(sim); err != nil {
				return err
			}
		}
		if out.RestartDelay > 0 && iter%out.RestartDelay == 0 {
			if err := sim.Writer.SaveRestart(sim); err != nil {
				return err
			}
		}
	}

	if status.Iteration == in.Numerical.MaxIter {
		sim.Log.Info("maximum number of iterations reached", "iter", status.Iteration)
	}
	if status.Time >= in.Numerical.MaxTime {
		sim.Log.Info("maximum simulation time reached", "time", status.Time)
	}
	if status.Stopped() {
		sim.Log.Warn("the simulation has been interrupted")
	}

	if err := sim.Writer.SaveSolution(sim); err != nil {
		return err
	}
	if err := sim.Writer.SaveRestart(sim); err != nil {
		return err
	}
	if err := sim.Writer.Close(); err != nil {
		return err
	}

	sim.Log.Info("simulation complete",
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

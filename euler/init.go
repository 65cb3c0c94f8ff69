package euler

// setInitialConditions fills the solution either from a restart file
// or from the configured uniform state plus block overrides.
func (sim *Simulation) setInitialConditions() error {
	in := sim.Input
	m := sim.Mesh
	f := &sim.Fields

	sim.Status.CFL = in.Numerical.CFL

	if in.Init.Restart {
		sim.Log.Info("loading restart file", "file", in.Init.RestartFile)
		if err := sim.Writer.LoadRestart(sim); err != nil {
			return err
		}
		sim.Log.Debug("restart file loaded")
		return nil
	}

	sim.Log.Debug("loading initial conditions from input")
	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			for v := 0; v < nVar; v++ {
				f.W[i*nVar+v] = in.Init.W0[v]
			}
		}
	})

	for b := range in.Init.Blocks {
		sim.Log.Debug("loading initial conditions for block", "block", b)
		blk := &in.Init.Blocks[b]
		sim.pm.RunParallel(func(np, kMin, kMax int) {
			for i := kMin; i < kMax; i++ {
				if !blk.Inside(m.Elements[i].Centroid) {
					continue
				}
				for v := 0; v < nVar; v++ {
					f.W[i*nVar+v] = blk.W0[v]
				}
			}
		})
	}
	return nil
}

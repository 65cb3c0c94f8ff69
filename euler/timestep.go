package euler

import "math"

// updateTimestep sets dt from the CFL condition: the tightest ratio of
// face signal flux to cell volume over the whole mesh. The final step
// is clamped so the run lands exactly on maxtime.
func (sim *Simulation) updateTimestep() {
	m := sim.Mesh
	f := &sim.Fields
	gamma := sim.Input.Fluid.Gamma
	status := &sim.Status

	local := make([]float64, sim.pm.ParallelDegree)
	sim.pm.RunParallel(func(np, kMin, kMax int) {
		var varLocal float64
		for i := kMin; i < kMax; i++ {
			elem := &m.Elements[i]
			rho := f.W[i*nVar]
			u := f.W[i*nVar+1] / rho
			v := f.W[i*nVar+2] / rho
			w := f.W[i*nVar+3] / rho
			K := 0.5 * rho * (u*u + v*v + w*w)
			p := (gamma - 1.0) * (f.W[i*nVar+4] - K)
			a := math.Sqrt(gamma * p / rho)

			var lMax float64
			for fc := 0; fc < elem.NFaces; fc++ {
				face := &m.Faces[elem.Faces[fc]]
				n := face.Normal
				un := u*n[0] + v*n[1] + w*n[2]
				lMax = math.Max(lMax, face.Area*(un+a))
			}

			if ratio := lMax / elem.Volume; ratio > varLocal {
				varLocal = ratio
			}
		}
		local[np] = varLocal
	})

	speed := 0.0
	for _, v := range local {
		if v > speed {
			speed = v
		}
	}

	dt := status.CFL / speed
	status.Dt = dt
	status.Time += dt

	if status.Time > sim.Input.Numerical.MaxTime {
		status.Dt -= status.Time - sim.Input.Numerical.MaxTime
		status.Time = sim.Input.Numerical.MaxTime
	}
}

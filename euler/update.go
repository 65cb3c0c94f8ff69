package euler

import "math"

// advanceSolution sums the face flux balance with the source term and
// advances the solution from the timestep snapshot using the given
// stage coefficient.
func (sim *Simulation) advanceSolution(stage int) {
	m := sim.Mesh
	f := &sim.Fields
	a := sim.Input.Numerical.A[stage]
	dt := sim.Status.Dt

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			elem := &m.Elements[i]
			for v := 0; v < nVar; v++ {
				dF := 0.0
				for fc := 0; fc < elem.NFaces; fc++ {
					dF += f.F[elem.Faces[fc]*nVar+v]
				}
				b := f.S[i*nVar+v] - dF
				if math.IsNaN(b) {
					b = 0.0
				}
				f.Rhs[i*nVar+v] = b
				f.W[i*nVar+v] = f.Wold[i*nVar+v] + a*dt/elem.Volume*b
			}
		}
	})
}

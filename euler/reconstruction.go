package euler

import "math"

// constantReconstruction copies the owner cell state onto each face.
func (sim *Simulation) constantReconstruction() {
	m := sim.Mesh
	f := &sim.Fields

	sim.facePartition().RunParallel(func(np, kMin, kMax int) {
		for fc := kMin; fc < kMax; fc++ {
			o := m.Faces[fc].Owner
			for v := 0; v < nVar; v++ {
				f.Wf[fc*nVar+v] = f.W[o*nVar+v]
			}
		}
	})
}

// musclReconstruction extrapolates cell states to faces along the
// limited gradient. A single limiting factor per element and variable
// is taken as the minimum over all faces, computed against the
// neighborhood envelope; near-flat envelopes collapse the slope
// entirely.
func (sim *Simulation) musclReconstruction() {
	m := sim.Mesh
	f := &sim.Fields

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			elem := &m.Elements[i]

			for v := 0; v < nVar; v++ {
				W := f.W[i*nVar+v]
				grad := f.GradW[i*nVar+v]

				wMin, wMax := W, W
				for fc := 0; fc < elem.NFaces; fc++ {
					n := elem.Neighbors[fc]
					if n < 0 {
						continue
					}
					wMax = math.Max(wMax, f.W[n*nVar+v])
					wMin = math.Min(wMin, f.W[n*nVar+v])
				}
				dMax := wMax - W
				dMin := wMin - W

				alpha := 1.0
				for fc := 0; fc < elem.NFaces; fc++ {
					df := grad.Dot(elem.Df[fc])

					if (df >= 0.0 && dMax < 1.0e-5) || (df <= 0.0 && dMin > -1.0e-5) {
						alpha = 0.0
						break
					}

					rf := df / dMin
					if df > 0.0 {
						rf = df / dMax
					}
					alpha = math.Min(alpha, sim.limiter(rf))
				}

				for fc := 0; fc < elem.NFaces; fc++ {
					fi := elem.Faces[fc]
					f.Wf[fi*nVar+v] = W + alpha*grad.Dot(elem.Df[fc])
				}
			}
		}
	})
}

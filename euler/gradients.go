package euler

import "github.com/alessio26gas/eulerfv/utils"

// computeGradients evaluates weighted least squares gradients of every
// conservative variable on every element, solving the per-element
// normal system with the precomputed inverse matrix.
func (sim *Simulation) computeGradients() {
	m := sim.Mesh
	f := &sim.Fields
	dim := f.Dim

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			elem := &m.Elements[i]

			for v := 0; v < nVar; v++ {
				W := f.W[i*nVar+v]

				var b utils.Vec3
				for fc := 0; fc < elem.NFaces; fc++ {
					n := elem.Neighbors[fc]
					if n < 0 {
						continue
					}
					dW := f.W[n*nVar+v] - W
					for d := 0; d < dim; d++ {
						b[d] += elem.W[fc][d] * dW
					}
				}

				var g utils.Vec3
				for d := 0; d < dim; d++ {
					for e := 0; e < dim; e++ {
						g[d] += elem.S[d][e] * b[e]
					}
				}
				f.GradW[i*nVar+v] = g
			}
		}
	})
}

package euler

import (
	"fmt"
	"math"
)

// valid reports whether the state at row base of w is finite and
// physical: positive density and total energy above kinetic energy.
func valid(w []float64, base int) bool {
	for v := 0; v < nVar; v++ {
		x := w[base+v]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	K := 0.5 * (w[base+1]*w[base+1] + w[base+2]*w[base+2] + w[base+3]*w[base+3]) / w[base]
	return w[base] >= 0.0 && w[base+4] >= K
}

// applyCorrections replaces unphysical cell states with the average of
// valid neighbor states from the previous iteration, reaching to the
// second neighbor ring when the first yields nothing. The run aborts
// when corrections touch more than a tenth of the boundary face count,
// which signals a diverging solution rather than isolated overshoots.
func (sim *Simulation) applyCorrections() error {
	m := sim.Mesh
	f := &sim.Fields

	counts := make([]int, sim.pm.ParallelDegree)
	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			if valid(f.W, i*nVar) {
				continue
			}
			counts[np]++

			elem := &m.Elements[i]
			for v := 0; v < nVar; v++ {
				correction := 0.0
				den := 0
				for fc := 0; fc < elem.NFaces; fc++ {
					n := elem.Neighbors[fc]
					if n < 0 || !valid(f.Wold, n*nVar) {
						continue
					}
					correction += f.Wold[n*nVar+v]
					den++
				}
				if den == 0 {
					for fc := 0; fc < elem.NFaces; fc++ {
						n := elem.Neighbors[fc]
						if n < 0 {
							continue
						}
						nb := &m.Elements[n]
						for fn := 0; fn < nb.NFaces; fn++ {
							nn := nb.Neighbors[fn]
							if nn < 0 || !valid(f.Wold, nn*nVar) {
								continue
							}
							correction += f.Wold[nn*nVar+v]
							den++
						}
					}
				}
				if den == 0 {
					// No valid donor in either ring. Leave the cell
					// alone and let the abort threshold decide.
					continue
				}
				f.W[i*nVar+v] = correction / float64(den)
			}
		}
	})

	corrections := 0
	for _, c := range counts {
		corrections += c
	}

	if float64(corrections) > 0.1*float64(m.NBoundaries) {
		return fmt.Errorf("a floating point error has occurred")
	}
	if corrections > 0 {
		sim.Log.Debug("corrections limited", "cells", corrections)
	}
	return nil
}

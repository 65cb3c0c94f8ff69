package euler

import "github.com/alessio26gas/eulerfv/input"

// updateSources zeroes the source terms, applies the active physics
// contributions, then scales everything by the cell volume.
func (sim *Simulation) updateSources() {
	m := sim.Mesh
	f := &sim.Fields

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			for v := 0; v < nVar; v++ {
				f.S[i*nVar+v] = 0.0
			}
		}
	})

	if sim.Input.Physics.Dimension == input.DimAxisymmetric {
		sim.axisymmetrySources()
	}

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			V := m.Elements[i].Volume
			for v := 0; v < nVar; v++ {
				f.S[i*nVar+v] *= V
			}
		}
	})
}

// axisymmetrySources adds the pressure source in the radial momentum
// equation arising from the cylindrical divergence.
func (sim *Simulation) axisymmetrySources() {
	m := sim.Mesh
	f := &sim.Fields
	gam := sim.Input.Fluid.Gamma

	sim.pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			rhoV2 := (f.W[i*nVar+1]*f.W[i*nVar+1] +
				f.W[i*nVar+2]*f.W[i*nVar+2] +
				f.W[i*nVar+3]*f.W[i*nVar+3]) / f.W[i*nVar]
			E := f.W[i*nVar+4]
			p := (gam - 1.0) * (E - 0.5*rhoV2)
			if p < 0 {
				p = pressureFloor
			}
			f.S[i*nVar+2] += p / m.Elements[i].Centroid[1]
		}
	})
}

// initAxisymmetry folds the radial coordinate into volumes and areas
// so the cartesian flux balance solves the axisymmetric equations.
func (sim *Simulation) initAxisymmetry() {
	m := sim.Mesh
	for i := range m.Elements {
		m.Elements[i].Volume *= m.Elements[i].Centroid[1]
	}
	for f := range m.Faces {
		m.Faces[f].Area *= m.Faces[f].Centroid[1]
	}
}

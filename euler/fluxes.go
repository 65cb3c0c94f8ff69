package euler

// computeFluxes evaluates the Riemann flux through every interior
// face. The left and right reconstructed states are rotated into the
// face frame, passed to the configured solver, and the resulting flux
// rotated back and scaled by the face area.
func (sim *Simulation) computeFluxes() {
	m := sim.Mesh
	f := &sim.Fields
	gamma := sim.Input.Fluid.Gamma

	sim.facePartition().RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			face := &m.Faces[i]
			j := face.Opposite
			if j < 0 {
				continue
			}

			n, t1, t2 := face.Normal, face.T1, face.T2

			var wl, wr [nVar]float64
			wl[0] = f.Wf[i*nVar]
			wl[1] = f.Wf[i*nVar+1]*n[0] + f.Wf[i*nVar+2]*n[1] + f.Wf[i*nVar+3]*n[2]
			wl[2] = f.Wf[i*nVar+1]*t1[0] + f.Wf[i*nVar+2]*t1[1] + f.Wf[i*nVar+3]*t1[2]
			wl[3] = f.Wf[i*nVar+1]*t2[0] + f.Wf[i*nVar+2]*t2[1] + f.Wf[i*nVar+3]*t2[2]
			wl[4] = f.Wf[i*nVar+4]

			wr[0] = f.Wf[j*nVar]
			wr[1] = f.Wf[j*nVar+1]*n[0] + f.Wf[j*nVar+2]*n[1] + f.Wf[j*nVar+3]*n[2]
			wr[2] = f.Wf[j*nVar+1]*t1[0] + f.Wf[j*nVar+2]*t1[1] + f.Wf[j*nVar+3]*t1[2]
			wr[3] = f.Wf[j*nVar+1]*t2[0] + f.Wf[j*nVar+2]*t2[1] + f.Wf[j*nVar+3]*t2[2]
			wr[4] = f.Wf[j*nVar+4]

			fr := sim.riemann(wl, wr, gamma)

			A := face.Area
			f.F[i*nVar] = fr[0] * A
			f.F[i*nVar+1] = (fr[1]*n[0] + fr[2]*t1[0] + fr[3]*t2[0]) * A
			f.F[i*nVar+2] = (fr[1]*n[1] + fr[2]*t1[1] + fr[3]*t2[1]) * A
			f.F[i*nVar+3] = (fr[1]*n[2] + fr[2]*t1[2] + fr[3]*t2[2]) * A
			f.F[i*nVar+4] = fr[4] * A
		}
	})
}

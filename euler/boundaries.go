package euler

import (
	"fmt"
	"math"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/mesh"
)

// initBoundaries derives the fixed inflow states for the inlet type
// boundaries and sanity checks the face flags left by the mesh reader.
// Faces flagged outside the configured boundary range fall back to
// boundary 0 with a warning.
func (sim *Simulation) initBoundaries() error {
	in := sim.Input

	for b := range in.BC.Boundaries {
		bc := &in.BC.Boundaries[b]
		switch bc.Type {
		case input.BCSupersonicInlet:
			sim.initSupersonicInlet(bc)
		case input.BCStagnationInlet:
			sim.initStagnationInlet(bc)
		case input.BCSupersonicOutlet, input.BCSubsonicInlet,
			input.BCPressureOutlet, input.BCWall, input.BCSymmetry,
			input.BCSlipWall, input.BCMovingWall, input.BCAxis:
		default:
			return fmt.Errorf("unknown boundary condition type %d", bc.Type)
		}
	}

	n := len(in.BC.Boundaries)
	for i := range sim.Mesh.Faces {
		face := &sim.Mesh.Faces[i]
		if face.Opposite != -1 {
			continue
		}
		if face.Flag >= 0 && face.Flag < n {
			continue
		}
		sim.Log.Warn("invalid boundary id found, defaulting to 0",
			"face", face.ID, "flag", face.Flag)
		face.Flag = 0
	}
	return nil
}

// initSupersonicInlet converts the user parameters (Mach, static
// pressure, static temperature, flow angles in degrees) into a fixed
// conservative inflow state.
func (sim *Simulation) initSupersonicInlet(bc *input.Boundary) {
	bc.Alpha = bc.Value[3] * math.Pi / 180.0
	bc.Phi = bc.Value[4] * math.Pi / 180.0

	M := bc.Value[0]
	p := bc.Value[1]
	T := bc.Value[2]
	alpha, phi := bc.Alpha, bc.Phi

	R := sim.Input.Fluid.R
	gamma := sim.Input.Fluid.Gamma
	V := M * math.Sqrt(gamma*R*T)

	rho := p / R / T
	u := V * math.Cos(alpha) * math.Cos(phi)
	v := V * math.Sin(alpha) * math.Cos(phi)
	w := V * math.Sin(phi)
	E := p/(gamma-1.0) + 0.5*rho*V*V

	bc.State = [5]float64{rho, u, v, w, E}
}

// initStagnationInlet converts the user parameters (total enthalpy,
// total pressure, supersonic static pressure, flow angles in degrees)
// into the conservative state used when the inlet runs supersonic.
func (sim *Simulation) initStagnationInlet(bc *input.Boundary) {
	bc.Alpha = bc.Value[3] * math.Pi / 180.0
	bc.Phi = bc.Value[4] * math.Pi / 180.0

	Htot := bc.Value[0]
	Ptot := bc.Value[1]
	Psup := bc.Value[2]
	alpha, phi := bc.Alpha, bc.Phi

	R := sim.Input.Fluid.R
	gam := sim.Input.Fluid.Gamma
	gam1 := gam - 1.0
	gam2 := 2.0 / gam1
	gam3 := gam / gam1

	M := math.Sqrt(gam2 * (math.Pow(Ptot/Psup, 1.0/gam3) - 1.0))
	T := Htot / (R * gam3) / (1.0 + 0.5*gam1*M*M)

	rho := Psup / T / R
	V := M * math.Sqrt(gam*Psup/rho)
	u := V * math.Cos(alpha) * math.Cos(phi)
	v := V * math.Sin(alpha) * math.Cos(phi)
	w := V * math.Sin(phi)
	E := Psup/gam1 + 0.5*rho*V*V

	bc.State = [5]float64{rho, u, v, w, E}
}

// applyBoundaryConditions computes the boundary flux on every unpaired
// face from the face reconstructed state and the flagged boundary
// specification, then scales by the face area. Wall variants share the
// symmetry treatment, which transmits pressure only.
func (sim *Simulation) applyBoundaryConditions() {
	m := sim.Mesh
	in := sim.Input

	sim.facePartition().RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			face := &m.Faces[i]
			if face.Opposite != -1 {
				continue
			}

			bc := &in.BC.Boundaries[face.Flag]

			switch bc.Type {
			case input.BCSupersonicInlet:
				sim.supersonicInlet(face, i, bc)
			case input.BCSupersonicOutlet:
				sim.supersonicOutlet(face, i)
			case input.BCStagnationInlet:
				sim.stagnationInlet(face, i, bc)
			case input.BCSubsonicInlet:
				sim.subsonicInlet(face, i, bc)
			case input.BCPressureOutlet:
				sim.pressureOutlet(face, i, bc)
			case input.BCMovingWall, input.BCWall, input.BCSlipWall, input.BCSymmetry:
				sim.symmetry(face, i)
			case input.BCAxis:
			}

			A := face.Area
			for v := 0; v < nVar; v++ {
				sim.Fields.F[i*nVar+v] *= A
			}
		}
	})
}

// facePrimitive unpacks the reconstructed face state into primitive
// variables with a floored pressure.
func (sim *Simulation) facePrimitive(f int) (rho, u, v, w, E, p float64) {
	fl := &sim.Fields
	gamma := sim.Input.Fluid.Gamma
	rho = fl.Wf[f*nVar]
	u = fl.Wf[f*nVar+1] / rho
	v = fl.Wf[f*nVar+2] / rho
	w = fl.Wf[f*nVar+3] / rho
	E = fl.Wf[f*nVar+4]
	p = (gamma - 1.0) * (E - 0.5*rho*(u*u+v*v+w*w))
	if p < 0 {
		p = pressureFloor
	}
	return
}

// setBoundaryFlux writes the inviscid flux of the given state through
// the face normal.
func (sim *Simulation) setBoundaryFlux(f int, n [3]float64, rho, u, v, w, E, p float64) {
	fl := &sim.Fields
	un := u*n[0] + v*n[1] + w*n[2]
	fl.F[f*nVar] = rho * un
	fl.F[f*nVar+1] = p*n[0] + rho*u*un
	fl.F[f*nVar+2] = p*n[1] + rho*v*un
	fl.F[f*nVar+3] = p*n[2] + rho*w*un
	fl.F[f*nVar+4] = (E + p) * un
}

// supersonicInlet imposes the full precomputed inflow state.
func (sim *Simulation) supersonicInlet(face *mesh.Face, f int, bc *input.Boundary) {
	st := bc.State
	sim.setBoundaryFlux(f, face.Normal, st[0], st[1], st[2], st[3], st[4], bc.Value[1])
}

// supersonicOutlet extrapolates everything from the interior.
func (sim *Simulation) supersonicOutlet(face *mesh.Face, f int) {
	rho, u, v, w, E, p := sim.facePrimitive(f)
	sim.setBoundaryFlux(f, face.Normal, rho, u, v, w, E, p)
}

// symmetry transmits pressure through the face and blocks all
// convective transport.
func (sim *Simulation) symmetry(face *mesh.Face, f int) {
	_, _, _, _, _, p := sim.facePrimitive(f)
	fl := &sim.Fields
	n := face.Normal
	fl.F[f*nVar] = 0
	fl.F[f*nVar+1] = p * n[0]
	fl.F[f*nVar+2] = p * n[1]
	fl.F[f*nVar+3] = p * n[2]
	fl.F[f*nVar+4] = 0
}

// subsonicInlet imposes temperature and velocity while taking the
// static pressure from the interior.
func (sim *Simulation) subsonicInlet(face *mesh.Face, f int, bc *input.Boundary) {
	T := bc.Value[0]
	u := bc.Value[1]
	v := bc.Value[2]
	w := bc.Value[3]
	k := 0.5 * (u*u + v*v + w*w)

	R := sim.Input.Fluid.R
	gam := sim.Input.Fluid.Gamma

	fl := &sim.Fields
	rhoExt := fl.Wf[f*nVar]
	EExt := fl.Wf[f*nVar+4]
	uExt := fl.Wf[f*nVar+1] / rhoExt
	vExt := fl.Wf[f*nVar+2] / rhoExt
	wExt := fl.Wf[f*nVar+3] / rhoExt
	kExt := 0.5 * (uExt*uExt + vExt*vExt + wExt*wExt)
	p := (gam - 1.0) * (EExt - rhoExt*kExt)

	rho := p / R / T
	E := p/(gam-1.0) + rho*k

	sim.setBoundaryFlux(f, face.Normal, rho, u, v, w, E, p)
}

// pressureOutlet fixes the static pressure for subsonic outflow via
// the outgoing Riemann invariant, extrapolates supersonic outflow, and
// clamps reverse flow to a closed face.
func (sim *Simulation) pressureOutlet(face *mesh.Face, f int, bc *input.Boundary) {
	n := face.Normal
	gam := sim.Input.Fluid.Gamma
	rho, u, v, w, E, p := sim.facePrimitive(f)
	un := u*n[0] + v*n[1] + w*n[2]

	a := math.Sqrt(gam * p / rho)
	switch {
	case un < 1.0e-14:
		// Reverse flow, close the face.
		fl := &sim.Fields
		fl.F[f*nVar] = 0
		fl.F[f*nVar+1] = p * n[0]
		fl.F[f*nVar+2] = p * n[1]
		fl.F[f*nVar+3] = p * n[2]
		fl.F[f*nVar+4] = 0
		return

	case un < a:
		t1, t2 := face.T1, face.T2
		ut1 := u*t1[0] + v*t1[1] + w*t1[2]
		ut2 := u*t2[0] + v*t2[1] + w*t2[2]

		pb := bc.Value[0]
		ab := a * math.Pow(pb/p, (gam-1.0)/(2.0*gam))

		p = pb
		rho = gam * p / (ab * ab)
		un = un + 2.0/(gam-1.0)*(a-ab)
		u = n[0]*un + t1[0]*ut1 + t2[0]*ut2
		v = n[1]*un + t1[1]*ut1 + t2[1]*ut2
		w = n[2]*un + t1[2]*ut1 + t2[2]*ut2
		E = p/(gam-1.0) + 0.5*rho*(u*u+v*v+w*w)
	}

	sim.setBoundaryFlux(f, n, rho, u, v, w, E, p)
}

// stagnationInlet imposes total conditions, switching between
// supersonic inflow, subsonic inflow and reverse flow regimes from the
// interior normal velocity.
func (sim *Simulation) stagnationInlet(face *mesh.Face, f int, bc *input.Boundary) {
	Htot := bc.Value[0]
	Ptot := bc.Value[1]
	Psup := bc.Value[2]
	alpha, phi := bc.Alpha, bc.Phi

	n := face.Normal
	t1, t2 := face.T1, face.T2

	R := sim.Input.Fluid.R
	gam := sim.Input.Fluid.Gamma
	gam1 := gam - 1.0
	gam2 := 2.0 / gam1
	gam3 := gam / gam1

	rho, u, v, w, E, p := sim.facePrimitive(f)
	un := u*n[0] + v*n[1] + w*n[2]

	a := math.Sqrt(gam * p / rho)
	switch {
	case un < -a:
		// Supersonic inflow, impose everything.
		p = Psup
		rho = bc.State[0]
		u = bc.State[1]
		v = bc.State[2]
		w = bc.State[3]
		E = bc.State[4]

	case un < 0:
		// Subsonic inflow, solve for the velocity magnitude from the
		// outgoing Riemann invariant and the total enthalpy.
		sigma := math.Cos(alpha)*math.Cos(phi)*n[0] +
			math.Sin(alpha)*math.Cos(phi)*n[1] +
			math.Sin(phi)*n[2]

		Rp := un + a*gam2
		A := sigma*sigma + gam2
		B := -2.0 * sigma * Rp
		C := Rp*Rp - Htot*2.0*gam2
		V := (-B + math.Sqrt(B*B-4.0*A*C)) / (2.0 * A)

		k := 0.5 * V * V
		T := (Htot - k) / (R * gam3)

		p = Ptot / math.Pow(1.0+k/(gam3*R*T), gam3)
		rho = p / (R * T)
		u = V * math.Cos(alpha) * math.Cos(phi)
		v = V * math.Sin(alpha) * math.Cos(phi)
		w = V * math.Sin(phi)
		E = p/gam1 + rho*k

	case un < a:
		// Reverse subsonic flow, treat as a pressure outlet at total
		// pressure.
		ut1 := u*t1[0] + v*t1[1] + w*t1[2]
		ut2 := u*t2[0] + v*t2[1] + w*t2[2]

		ab := a * math.Pow(Ptot/p, 0.5/gam3)

		p = Ptot
		rho = gam * p / (ab * ab)
		un = un + gam2*(a-ab)
		u = n[0]*un + t1[0]*ut1 + t2[0]*ut2
		v = n[1]*un + t1[1]*ut1 + t2[1]*ut2
		w = n[2]*un + t1[2]*ut1 + t2[2]*ut2
		E = p/gam1 + 0.5*rho*(u*u+v*v+w*w)

	default:
		// Reverse supersonic flow, extrapolate.
	}

	sim.setBoundaryFlux(f, n, rho, u, v, w, E, p)
}

package euler

import (
	"fmt"
	"math"

	"github.com/alessio26gas/eulerfv/input"
)

// pressureFloor guards against negative pressures from intermediate
// states during strong transients.
const pressureFloor = 1.0e-14

// RiemannFunc computes the flux between a left and right state given
// in the face local frame, where index 1 is the normal component and
// indices 2 and 3 the tangential components.
type RiemannFunc func(wl, wr [nVar]float64, gamma float64) [nVar]float64

// riemannFor maps a configured solver code to its implementation.
func riemannFor(r input.Riemann) (RiemannFunc, error) {
	switch r {
	case input.RiemannRusanov:
		return Rusanov, nil
	case input.RiemannHLL:
		return HLL, nil
	case input.RiemannHLLC:
		return HLLC, nil
	default:
		return nil, fmt.Errorf("unknown Riemann solver %d", r)
	}
}

// primitive unpacks a conservative state into velocity components,
// floored pressure and sound speed.
func primitive(w [nVar]float64, gamma float64) (rho, un, ut1, ut2, E, p, a float64) {
	rho = w[0]
	un = w[1] / rho
	ut1 = w[2] / rho
	ut2 = w[3] / rho
	E = w[4]
	p = (gamma - 1.0) * (E - 0.5*rho*(un*un+ut1*ut1+ut2*ut2))
	if p < 0 {
		p = pressureFloor
	}
	a = math.Sqrt(gamma * p / rho)
	return
}

// normalFlux is the analytic Euler flux through a unit face for a
// state expressed in the face frame.
func normalFlux(rho, un, ut1, ut2, E, p float64) [nVar]float64 {
	return [nVar]float64{
		rho * un,
		rho*un*un + p,
		rho * un * ut1,
		rho * un * ut2,
		(E + p) * un,
	}
}

// Rusanov approximates the interface flux with a single dissipative
// wave travelling at the maximum signal speed.
func Rusanov(wl, wr [nVar]float64, gamma float64) [nVar]float64 {
	rhoL, unL, ut1L, ut2L, EL, pL, aL := primitive(wl, gamma)
	rhoR, unR, ut1R, ut2R, ER, pR, aR := primitive(wr, gamma)

	FL := normalFlux(rhoL, unL, ut1L, ut2L, EL, pL)
	FR := normalFlux(rhoR, unR, ut1R, ut2R, ER, pR)

	s := math.Max(math.Abs(unL)+aL, math.Abs(unR)+aR)

	var F [nVar]float64
	for v := 0; v < nVar; v++ {
		F[v] = 0.5*(FL[v]+FR[v]) - 0.5*s*(wr[v]-wl[v])
	}
	return F
}

// HLL uses two-wave estimates bounding the Riemann fan.
func HLL(wl, wr [nVar]float64, gamma float64) [nVar]float64 {
	rhoL, unL, ut1L, ut2L, EL, pL, aL := primitive(wl, gamma)
	rhoR, unR, ut1R, ut2R, ER, pR, aR := primitive(wr, gamma)

	FL := normalFlux(rhoL, unL, ut1L, ut2L, EL, pL)
	FR := normalFlux(rhoR, unR, ut1R, ut2R, ER, pR)

	sL := math.Min(unL, unR) - math.Max(aL, aR)
	sR := math.Max(unL, unR) + math.Max(aL, aR)

	switch {
	case sL > 0:
		return FL
	case sR < 0:
		return FR
	}

	var F [nVar]float64
	dS := sR - sL
	for v := 0; v < nVar; v++ {
		F[v] = ((sR*FL[v] - sL*FR[v]) + sL*sR*(wr[v]-wl[v])) / dS
	}
	return F
}

// HLLC restores the contact wave dropped by HLL, resolving material
// interfaces and shear layers sharply.
func HLLC(wl, wr [nVar]float64, gamma float64) [nVar]float64 {
	rhoL, unL, ut1L, ut2L, EL, pL, aL := primitive(wl, gamma)
	rhoR, unR, ut1R, ut2R, ER, pR, aR := primitive(wr, gamma)

	FL := normalFlux(rhoL, unL, ut1L, ut2L, EL, pL)
	FR := normalFlux(rhoR, unR, ut1R, ut2R, ER, pR)

	sL := math.Min(unL, unR) - math.Max(aL, aR)
	sR := math.Max(unL, unR) + math.Max(aL, aR)

	switch {
	case sL > 0:
		return FL
	case sR < 0:
		return FR
	}

	sM := (pR - pL + wl[1]*(sL-unL) - wr[1]*(sR-unR)) /
		(rhoL*(sL-unL) - rhoR*(sR-unR))
	pM := 0.5 * (pL + pR + rhoL*(sL-unL)*(sM-unL) + rhoR*(sR-unR)*(sM-unR))
	D := [nVar]float64{0.0, 1.0, 0.0, 0.0, sM}

	var F [nVar]float64
	if sM > 0 {
		dSL := sL - sM
		for v := 0; v < nVar; v++ {
			F[v] = (sM*(sL*wl[v]-FL[v]) + sL*pM*D[v]) / dSL
		}
	} else {
		dSR := sR - sM
		for v := 0; v < nVar; v++ {
			F[v] = (sM*(sR*wr[v]-FR[v]) + sR*pM*D[v]) / dSR
		}
	}
	return F
}

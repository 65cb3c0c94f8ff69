package euler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gammaAir = 1.4

// state builds a conservative state from primitive values in the face
// frame.
func state(rho, un, ut1, ut2, p float64) [nVar]float64 {
	E := p/(gammaAir-1.0) + 0.5*rho*(un*un+ut1*ut1+ut2*ut2)
	return [nVar]float64{rho, rho * un, rho * ut1, rho * ut2, E}
}

func riemannSolvers() map[string]RiemannFunc {
	return map[string]RiemannFunc{
		"Rusanov": Rusanov,
		"HLL":     HLL,
		"HLLC":    HLLC,
	}
}

func TestRiemannConsistency(t *testing.T) {
	states := [][nVar]float64{
		state(1.225, 0.0, 0.0, 0.0, 101325.0),
		state(1.225, 50.0, 0.0, 0.0, 101325.0),
		state(0.5, -120.0, 30.0, -10.0, 40000.0),
		state(1.0, 600.0, 0.0, 0.0, 101325.0),
	}

	for name, solver := range riemannSolvers() {
		for _, w := range states {
			rho, un, ut1, ut2, E, p, _ := primitive(w, gammaAir)
			exact := normalFlux(rho, un, ut1, ut2, E, p)
			F := solver(w, w, gammaAir)
			for v := 0; v < nVar; v++ {
				assert.InDelta(t, exact[v], F[v], 1.0e-9*math.Max(1.0, math.Abs(exact[v])),
					"%s variable %d", name, v)
			}
		}
	}
}

func TestRiemannSupersonicUpwinding(t *testing.T) {
	// Both states move right faster than their sound speeds, so the
	// wave solvers must return the pure left flux.
	wl := state(1.0, 700.0, 10.0, 0.0, 101325.0)
	wr := state(0.8, 650.0, -5.0, 0.0, 80000.0)

	rho, un, ut1, ut2, E, p, _ := primitive(wl, gammaAir)
	FL := normalFlux(rho, un, ut1, ut2, E, p)

	for _, solver := range []RiemannFunc{HLL, HLLC} {
		F := solver(wl, wr, gammaAir)
		for v := 0; v < nVar; v++ {
			assert.InDelta(t, FL[v], F[v], 1.0e-9*math.Max(1.0, math.Abs(FL[v])))
		}
	}
}

func TestHLLCStationaryContact(t *testing.T) {
	// A stationary contact discontinuity has equal pressure and zero
	// velocity on both sides. HLLC must resolve it exactly: no mass or
	// energy transport and a pure pressure force.
	p := 101325.0
	wl := state(1.0, 0.0, 0.0, 0.0, p)
	wr := state(0.25, 0.0, 0.0, 0.0, p)

	F := HLLC(wl, wr, gammaAir)
	assert.InDelta(t, 0.0, F[0], 1.0e-9)
	assert.InDelta(t, p, F[1], 1.0e-6)
	assert.InDelta(t, 0.0, F[4], 1.0e-9)
}

func TestRiemannPositiveDissipation(t *testing.T) {
	// Across a right-moving shock the interface mass flux must sit
	// between the upstream and downstream fluxes.
	wl := state(1.0, 300.0, 0.0, 0.0, 200000.0)
	wr := state(0.5, 100.0, 0.0, 0.0, 50000.0)

	for name, solver := range riemannSolvers() {
		F := solver(wl, wr, gammaAir)
		require.False(t, math.IsNaN(F[0]), name)
		assert.Greater(t, F[0], 0.0, name)
	}
}

package sodtube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegions(t *testing.T) {
	_, _, _, x4 := Regions(0.1)
	assert.InDelta(t, 0.6752, x4, 1.0e-4)

	_, _, _, x4 = Regions(0.2)
	assert.InDelta(t, 0.8504, x4, 1.0e-4)

	x1, x2, x3, x4 := Regions(0.1)
	assert.Less(t, x1, x2)
	assert.Less(t, x2, x3)
	assert.Less(t, x3, x4)
	assert.InDelta(t, 0.5-math.Sqrt(1.4)*0.1, x1, 1.0e-12)
}

func TestPlateauStates(t *testing.T) {
	// Undisturbed states outside the wave fan.
	left := Solve(0.1, 0.1)
	assert.Equal(t, 1.0, left.Rho)
	assert.Equal(t, 1.0, left.P)
	assert.Equal(t, 0.0, left.U)

	right := Solve(0.9, 0.1)
	assert.Equal(t, 0.125, right.Rho)
	assert.Equal(t, 0.1, right.P)

	// Post-contact and post-shock plateaus.
	middle := Solve(0.55, 0.1)
	assert.InDelta(t, 0.42632, middle.Rho, 1.0e-3)
	assert.InDelta(t, 0.30313, middle.P, 1.0e-3)
	assert.InDelta(t, 0.92745, middle.U, 1.0e-3)

	post := Solve(0.63, 0.1)
	assert.InDelta(t, 0.26557, post.Rho, 1.0e-3)
	assert.InDelta(t, 0.30313, post.P, 1.0e-3)

	// Pressure and velocity are continuous across the contact.
	assert.InDelta(t, middle.P, post.P, 1.0e-12)
	assert.InDelta(t, middle.U, post.U, 1.0e-12)
}

func TestShockJumpRoot(t *testing.T) {
	pPost, vPost, rhoMiddle, rhoPost := postState()

	// Reference values of the exact Riemann solution for these states.
	assert.InDelta(t, 0.3031302, pPost, 1.0e-5)
	assert.InDelta(t, 0.9274526, vPost, 1.0e-5)
	assert.InDelta(t, 0.4263194, rhoMiddle, 1.0e-5)
	assert.InDelta(t, 0.2655737, rhoPost, 1.0e-5)

	assert.InDelta(t, 0.0, shockJump(pPost), 1.0e-6)
}

func TestRarefactionIsContinuous(t *testing.T) {
	x1, x2, _, _ := Regions(0.1)

	head := Solve(x1-1.0e-9, 0.1)
	headIn := Solve(x1+1.0e-9, 0.1)
	assert.InDelta(t, head.Rho, headIn.Rho, 1.0e-6)

	tail := Solve(x2-1.0e-9, 0.1)
	tailOut := Solve(x2+1.0e-9, 0.1)
	assert.InDelta(t, tail.Rho, tailOut.Rho, 1.0e-6)

	// Density decreases monotonically through the fan.
	prev := Solve(x1, 0.1).Rho
	for x := x1; x <= x2; x += (x2 - x1) / 50.0 {
		rho := Solve(x, 0.1).Rho
		assert.LessOrEqual(t, rho, prev+1.0e-12)
		prev = rho
	}
}

func TestEnergyConsistency(t *testing.T) {
	for _, x := range []float64{0.2, 0.45, 0.55, 0.63, 0.9} {
		s := Solve(x, 0.1)
		assert.InDelta(t, s.P/(0.4*s.Rho), s.E, 1.0e-12)
	}
}

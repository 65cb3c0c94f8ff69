// Package sodtube provides the exact solution of the classic Sod shock
// tube problem, used to verify the solver against a known Riemann
// problem. The tube spans [0,1] with the diaphragm at x = 0.5, left
// state (rho, p, u) = (1, 1, 0), right state (0.125, 0.1, 0) and
// gamma = 1.4.
package sodtube

import "math"

const (
	gamma = 1.4
	x0    = 0.5

	rhoL, pL, uL = 1.0, 1.0, 0.0
	rhoR, pR, uR = 0.125, 0.1, 0.0
)

// State holds the primitive solution at one point: density, velocity,
// pressure and specific internal energy.
type State struct {
	Rho, U, P, E float64
}

// Regions returns the four wave positions at time t: the head and tail
// of the rarefaction, the contact discontinuity and the shock.
func Regions(t float64) (x1, x2, x3, x4 float64) {
	_, vPost, _, rhoPost := postState()
	cL := math.Sqrt(gamma * pL / rhoL)
	vShock := vPost * (rhoPost / rhoR) / ((rhoPost / rhoR) - 1.0)
	c2 := cL - 0.5*(gamma-1.0)*vPost

	x1 = x0 - cL*t
	x2 = x0 + t*(vPost-c2)
	x3 = x0 + vPost*t
	x4 = x0 + vShock*t
	return
}

// Solve samples the exact solution at position x and time t.
func Solve(x, t float64) State {
	pPost, vPost, rhoMiddle, rhoPost := postState()
	mu2 := (gamma - 1.0) / (gamma + 1.0)
	cL := math.Sqrt(gamma * pL / rhoL)

	x1, x2, x3, x4 := Regions(t)

	var s State
	switch {
	case x < x1:
		s = State{Rho: rhoL, U: uL, P: pL}
	case x <= x2:
		c := mu2*((x0-x)/t) + (1.0-mu2)*cL
		s.Rho = rhoL * math.Pow(c/cL, 2.0/(gamma-1.0))
		s.P = pL * math.Pow(s.Rho/rhoL, gamma)
		s.U = (1.0 - mu2) * ((x-x0)/t + cL)
	case x <= x3:
		s = State{Rho: rhoMiddle, U: vPost, P: pPost}
	case x <= x4:
		s = State{Rho: rhoPost, U: vPost, P: pPost}
	default:
		s = State{Rho: rhoR, U: uR, P: pR}
	}
	s.E = s.P / ((gamma - 1.0) * s.Rho)
	return s
}

// postState solves the shock jump relation for the post-shock pressure
// and derives the post-shock and post-contact states.
func postState() (pPost, vPost, rhoMiddle, rhoPost float64) {
	mu2 := (gamma - 1.0) / (gamma + 1.0)
	pPost = fzero(shockJump, math.Pi)
	vPost = 2.0 * (math.Sqrt(gamma) / (gamma - 1.0)) *
		(1.0 - math.Pow(pPost, (gamma-1.0)/(2.0*gamma)))
	rhoPost = rhoR * ((pPost/pR + mu2) / (1.0 + mu2*pPost/pR))
	rhoMiddle = rhoL * math.Pow(pPost/pL, 1.0/gamma)
	return
}

// shockJump is the pressure function whose root is the post-shock
// pressure: the Rankine-Hugoniot mass flux through the shock minus the
// velocity gained across the rarefaction.
func shockJump(p float64) float64 {
	mu2 := (gamma - 1.0) / (gamma + 1.0)
	return (p-pR)*math.Sqrt((1.0-mu2)/(rhoR*(p+mu2*pR))) -
		2.0*(math.Sqrt(gamma)/(gamma-1.0))*(1.0-math.Pow(p, (gamma-1.0)/(2.0*gamma)))
}

// fzero finds a root of f by secant iteration from the given start.
func fzero(f func(float64) float64, start float64) float64 {
	const tol = 1e-7
	prev := start / 2
	res := f(prev)
	for math.Abs(res) > tol {
		resNew := f(start)
		deriv := (start - prev) / (resNew - res)
		next := math.Abs(start - 0.01*f(start)/deriv)
		prev = start
		start = next
		res = resNew
	}
	return start
}

package euler

import (
	"fmt"
	"math"

	"github.com/alessio26gas/eulerfv/input"
)

// LimiterFunc maps the slope ratio rf to a limiting factor in [0, 2].
type LimiterFunc func(rf float64) float64

// Minmod is highly diffusive and a safe baseline.
func Minmod(rf float64) float64 {
	if rf < 1.0 {
		return 1.0
	}
	return 1.0 / rf
}

// Superbee preserves sharp gradients more aggressively than the other
// limiters, at the cost of clipping smooth extrema.
func Superbee(rf float64) float64 {
	if rf < 0.5 {
		return 2.0
	}
	return math.Max(math.Min(2.0/rf, 1.0), math.Min(1.0/rf, 2.0))
}

// VanLeer is a classic symmetric TVD limiter.
func VanLeer(rf float64) float64 {
	return 2.0 / (rf + 1.0)
}

// Venkatakrishnan is smooth in rf, which helps steady state
// convergence.
func Venkatakrishnan(rf float64) float64 {
	return (2.0*rf + 1.0) / (rf*(2.0*rf+1.0) + 1.0)
}

// ModVenkatakrishnan is a higher order variant of Venkatakrishnan.
func ModVenkatakrishnan(rf float64) float64 {
	return (rf*(2.0*rf+1.0) + 1.0) / (rf*(rf*(2.0*rf+1.0)+1.0) + 1.0)
}

func limiterFor(l input.Limiter) (LimiterFunc, error) {
	switch l {
	case input.LimiterMinmod:
		return Minmod, nil
	case input.LimiterSuperbee:
		return Superbee, nil
	case input.LimiterVanLeer:
		return VanLeer, nil
	case input.LimiterVenkatakrishnan:
		return Venkatakrishnan, nil
	case input.LimiterModVenkatakrishnan:
		return ModVenkatakrishnan, nil
	default:
		return nil, fmt.Errorf("unknown limiter %d", l)
	}
}

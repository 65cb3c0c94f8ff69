package euler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func limiters() map[string]LimiterFunc {
	return map[string]LimiterFunc{
		"Minmod":             Minmod,
		"Superbee":           Superbee,
		"VanLeer":            VanLeer,
		"Venkatakrishnan":    Venkatakrishnan,
		"ModVenkatakrishnan": ModVenkatakrishnan,
	}
}

func TestLimiterValues(t *testing.T) {
	assert.Equal(t, 1.0, Minmod(0.5))
	assert.Equal(t, 1.0, Minmod(1.0))
	assert.Equal(t, 0.5, Minmod(2.0))

	assert.Equal(t, 2.0, Superbee(0.25))
	assert.Equal(t, 1.0, Superbee(1.0))
	assert.Equal(t, 0.5, Superbee(4.0))

	assert.Equal(t, 2.0, VanLeer(0.0))
	assert.Equal(t, 1.0, VanLeer(1.0))

	assert.Equal(t, 1.0, Venkatakrishnan(0.0))
	assert.InDelta(t, 0.75, Venkatakrishnan(1.0), 1.0e-14)

	assert.Equal(t, 1.0, ModVenkatakrishnan(0.0))
	assert.InDelta(t, 0.8, ModVenkatakrishnan(1.0), 1.0e-14)
}

func TestLimiterBounds(t *testing.T) {
	for name, lim := range limiters() {
		for rf := 0.0; rf <= 100.0; rf += 0.01 {
			phi := lim(rf)
			assert.GreaterOrEqual(t, phi, 0.0, "%s at rf=%g", name, rf)
			assert.LessOrEqual(t, phi, 2.0, "%s at rf=%g", name, rf)
		}
	}
}

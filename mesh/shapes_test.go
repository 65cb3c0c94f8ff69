package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alessio26gas/eulerfv/utils"
)

func TestTetraProperties(t *testing.T) {
	a := utils.Vec3{0, 0, 0}
	b := utils.Vec3{1, 0, 0}
	c := utils.Vec3{0, 1, 0}
	d := utils.Vec3{0, 0, 1}

	assert.InDelta(t, 1.0/6.0, tetraVolume(a, b, c, d), 1.0e-15)

	cen := tetraCentroid(a, b, c, d)
	assert.InDelta(t, 0.25, cen[0], 1.0e-15)
	assert.InDelta(t, 0.25, cen[1], 1.0e-15)
	assert.InDelta(t, 0.25, cen[2], 1.0e-15)

	// Orientation must not matter for the volume.
	assert.InDelta(t, 1.0/6.0, tetraVolume(a, c, b, d), 1.0e-15)
}

func TestTriaVector(t *testing.T) {
	s := triaVector(utils.Vec3{0, 0, 0}, utils.Vec3{1, 0, 0}, utils.Vec3{0, 1, 0})
	assert.InDelta(t, 0.5, s.Norm(), 1.0e-15)
	assert.InDelta(t, 0.5, s[2], 1.0e-15)
}

func TestPolygonProperties(t *testing.T) {
	square := []utils.Vec3{
		{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0},
	}
	centroid, area := polygonProperties(square)
	assert.InDelta(t, 4.0, area, 1.0e-13)
	assert.InDelta(t, 1.0, centroid[0], 1.0e-13)
	assert.InDelta(t, 1.0, centroid[1], 1.0e-13)
}

func TestHexaProperties(t *testing.T) {
	cube := []utils.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	centroid, volume := hexaProperties(cube)
	assert.InDelta(t, 1.0, volume, 1.0e-13)
	for d := 0; d < 3; d++ {
		assert.InDelta(t, 0.5, centroid[d], 1.0e-13)
	}
}

func TestPrismProperties(t *testing.T) {
	prism := []utils.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
	}
	centroid, volume := prismProperties(prism)
	assert.InDelta(t, 0.5, volume, 1.0e-13)
	assert.InDelta(t, 0.5, centroid[2], 1.0e-13)
	assert.InDelta(t, 1.0/3.0, centroid[0], 1.0e-13)
}

func TestPyramidProperties(t *testing.T) {
	pyramid := []utils.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0.5, 0.5, 1},
	}
	centroid, volume := pyramidProperties(pyramid)
	assert.InDelta(t, 1.0/3.0, volume, 1.0e-13)
	assert.InDelta(t, 0.5, centroid[0], 1.0e-13)
	assert.InDelta(t, 0.25, centroid[2], 1.0e-13)
}

func TestFaceKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, faceKey([]int{3, 1, 2}), faceKey([]int{2, 3, 1}))
	assert.NotEqual(t, faceKey([]int{1, 2}), faceKey([]int{1, 3}))
	assert.NotEqual(t, faceKey([]int{1, 23}), faceKey([]int{12, 3}))
}

func TestElementTypeString(t *testing.T) {
	assert.Equal(t, "HEXA", Hexa.String())
	assert.Equal(t, "POLYHEDRON", Polyhedron.String())
}

package mesh

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
)

func writeMesh(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.msh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testInput(dim int, meshFile string) *input.Input {
	in := input.NewInput()
	in.Physics.Dimension = dim
	in.Mesh.MeshFile = meshFile
	in.Numerical.NThreads = 2
	in.BC.Boundaries = make([]input.Boundary, 4)
	return in
}

// quadMesh builds a 2x2 grid of unit/2 quads on [0,1]^2 with the
// boundary edges listed before the interior elements, tagged by side:
// bottom 0, right 1, top 2, left 3.
func quadMesh() string {
	var sb strings.Builder
	sb.WriteString("$Nodes\n9\n")
	id := 1
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&sb, "%d %g %g 0\n", id, 0.5*float64(i), 0.5*float64(j))
			id++
		}
	}
	sb.WriteString("$EndNodes\n$Elements\n12\n")
	// node ids: 1 2 3 / 4 5 6 / 7 8 9, bottom row first
	lines := []string{
		"1 1 1 0 1 2", "2 1 1 0 2 3", // bottom
		"3 1 1 1 3 6", "4 1 1 1 6 9", // right
		"5 1 1 2 9 8", "6 1 1 2 8 7", // top
		"7 1 1 3 7 4", "8 1 1 3 4 1", // left
		"9 3 0 1 2 5 4",
		"10 3 0 2 3 6 5",
		"11 3 0 4 5 8 7",
		"12 3 0 5 6 9 8",
	}
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	sb.WriteString("$EndElements\n")
	return sb.String()
}

func TestReadQuadMesh(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, quadMesh()))
	m, err := Read(in, logging.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 9, m.NNodes)
	assert.Equal(t, 4, m.NElements)
	assert.Equal(t, 4, len(m.Elements))
	assert.Equal(t, 16, m.NFaces)
	assert.Equal(t, 8, m.NBoundaries)

	for i := range m.Elements {
		elem := &m.Elements[i]
		assert.InDelta(t, 0.25, elem.Volume, 1.0e-14)
		assert.False(t, elem.Boundary)
		assert.Equal(t, i, m.Faces[elem.Faces[0]].Owner)
	}
	assert.InDelta(t, 0.25, m.Elements[0].Centroid[0], 1.0e-14)
	assert.InDelta(t, 0.25, m.Elements[0].Centroid[1], 1.0e-14)
	assert.InDelta(t, 0.75, m.Elements[3].Centroid[0], 1.0e-14)
	assert.InDelta(t, 0.75, m.Elements[3].Centroid[1], 1.0e-14)
}

func TestQuadMeshConnectivity(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, quadMesh()))
	m, err := Read(in, logging.NewNop())
	require.NoError(t, err)

	interior := 0
	for i := range m.Faces {
		face := &m.Faces[i]
		require.GreaterOrEqual(t, face.Owner, 0)
		require.Less(t, face.Owner, m.NElements)

		if face.Opposite == -1 {
			assert.Equal(t, -1, face.Neighbor)
			continue
		}
		interior++
		opp := &m.Faces[face.Opposite]
		assert.Equal(t, face.Owner, opp.Neighbor)
		assert.Equal(t, face.Neighbor, opp.Owner)
		assert.Equal(t, face.ID, opp.Opposite)
	}
	// 8 interior half faces form 4 shared faces.
	assert.Equal(t, 8, interior)
}

func TestQuadMeshBoundaryFlags(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, quadMesh()))
	m, err := Read(in, logging.NewNop())
	require.NoError(t, err)

	// Flags transferred from the boundary element tags: face position
	// determines its side.
	for i := range m.Faces {
		face := &m.Faces[i]
		if face.Opposite != -1 {
			continue
		}
		c := face.Centroid
		switch {
		case c[1] == 0.0:
			assert.Equal(t, 0, face.Flag)
		case c[0] == 1.0:
			assert.Equal(t, 1, face.Flag)
		case c[1] == 1.0:
			assert.Equal(t, 2, face.Flag)
		case c[0] == 0.0:
			assert.Equal(t, 3, face.Flag)
		default:
			t.Fatalf("boundary face with interior centroid %v", c)
		}
	}
}

func TestQuadMeshNormals(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, quadMesh()))
	m, err := Read(in, logging.NewNop())
	require.NoError(t, err)

	for i := range m.Faces {
		face := &m.Faces[i]
		owner := &m.Elements[face.Owner]

		assert.InDelta(t, 1.0, face.Normal.Norm(), 1.0e-12)
		assert.InDelta(t, 1.0, face.T1.Norm(), 1.0e-12)
		assert.InDelta(t, 0.0, face.Normal.Dot(face.T1), 1.0e-12)

		T2 := face.Normal.Cross(face.T1)
		for d := 0; d < 3; d++ {
			assert.InDelta(t, T2[d], face.T2[d], 1.0e-12)
		}

		// Normal points away from the owner centroid.
		out := face.Centroid.Sub(owner.Centroid)
		assert.Greater(t, out.Dot(face.Normal), 0.0)
	}
}

// hexaMesh builds a 2x2x2 grid of half-unit cubes on [0,1]^3 with all
// boundary quads tagged 0.
func hexaMesh() string {
	node := func(i, j, k int) int { return 1 + i + 3*j + 9*k }

	var sb strings.Builder
	sb.WriteString("$Nodes\n27\n")
	id := 1
	for k := 0; k < 3; k++ {
		for j := 0; j < 3; j++ {
			for i := 0; i < 3; i++ {
				fmt.Fprintf(&sb, "%d %g %g %g\n", id,
					0.5*float64(i), 0.5*float64(j), 0.5*float64(k))
				id++
			}
		}
	}
	sb.WriteString("$EndNodes\n$Elements\n32\n")

	id = 1
	quad := func(a, b, c, d int) {
		fmt.Fprintf(&sb, "%d 3 1 0 %d %d %d %d\n", id, a, b, c, d)
		id++
	}
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			quad(node(a, b, 0), node(a+1, b, 0), node(a+1, b+1, 0), node(a, b+1, 0))
			quad(node(a, b, 2), node(a+1, b, 2), node(a+1, b+1, 2), node(a, b+1, 2))
			quad(node(a, 0, b), node(a+1, 0, b), node(a+1, 0, b+1), node(a, 0, b+1))
			quad(node(a, 2, b), node(a+1, 2, b), node(a+1, 2, b+1), node(a, 2, b+1))
			quad(node(0, a, b), node(0, a+1, b), node(0, a+1, b+1), node(0, a, b+1))
			quad(node(2, a, b), node(2, a+1, b), node(2, a+1, b+1), node(2, a, b+1))
		}
	}
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				fmt.Fprintf(&sb, "%d 5 0 %d %d %d %d %d %d %d %d\n", id,
					node(i, j, k), node(i+1, j, k), node(i+1, j+1, k), node(i, j+1, k),
					node(i, j, k+1), node(i+1, j, k+1), node(i+1, j+1, k+1), node(i, j+1, k+1))
				id++
			}
		}
	}
	sb.WriteString("$EndElements\n")
	return sb.String()
}

func TestReadHexaMesh(t *testing.T) {
	in := testInput(input.Dim3D, writeMesh(t, hexaMesh()))
	m, err := Read(in, logging.NewNop())
	require.NoError(t, err)

	require.Equal(t, 8, m.NElements)
	assert.Equal(t, 48, m.NFaces)
	assert.Equal(t, 24, m.NBoundaries)

	totalVolume := 0.0
	for i := range m.Elements {
		elem := &m.Elements[i]
		assert.InDelta(t, 0.125, elem.Volume, 1.0e-13)
		totalVolume += elem.Volume
		for d := 0; d < 3; d++ {
			c := elem.Centroid[d]
			assert.True(t, math.Abs(c-0.25) < 1.0e-12 || math.Abs(c-0.75) < 1.0e-12,
				"unexpected centroid coordinate %g", c)
		}
	}
	assert.InDelta(t, 1.0, totalVolume, 1.0e-12)

	for i := range m.Faces {
		face := &m.Faces[i]
		assert.InDelta(t, 0.25, face.Area, 1.0e-13)
		assert.InDelta(t, 1.0, face.Normal.Norm(), 1.0e-12)
		out := face.Centroid.Sub(m.Elements[face.Owner].Centroid)
		assert.Greater(t, out.Dot(face.Normal), 0.0)
	}
}

func TestReadMissingNodes(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, "$Elements\n1\n1 3 0 1 2 3 4\n"))
	_, err := Read(in, logging.NewNop())
	assert.Error(t, err)
}

func TestReadBoundaryElementWithoutTags(t *testing.T) {
	content := `$Nodes
4
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
$EndNodes
$Elements
2
1 1 0 1 2
2 3 0 1 2 3 4
$EndElements
`
	in := testInput(input.Dim2D, writeMesh(t, content))
	_, err := Read(in, logging.NewNop())
	assert.Error(t, err)
}

func TestVolumeFloor(t *testing.T) {
	in := testInput(input.Dim2D, writeMesh(t, quadMesh()))
	in.Mesh.MinVolume = 1.0
	_, err := Read(in, logging.NewNop())
	assert.Error(t, err)
}

// Package mesh loads an unstructured computational mesh and derives the
// geometric quantities the solver needs: element volumes and centroids,
// face areas, normals and tangents, face connectivity, boundary flags
// and the least squares reconstruction matrices.
//
// The mesh file follows the Gmsh ASCII layout: a $Nodes section with
// one node per line (id, x, y, z) and an $Elements section with one
// element per line (id, type, tag count, tags, connectivity). Node
// indices in the file are 1-based.
package mesh

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/utils"
)

// ElementType enumerates the supported element shapes. The numeric
// values are the type codes used in mesh files.
type ElementType int

const (
	Point ElementType = iota
	Linear
	Tria
	Quad
	Tetra
	Hexa
	Prism
	Pyramid
	Polygon
	Polyhedron
)

var elementNames = [...]string{
	"POINT", "LINEAR", "TRIA", "QUAD", "TETRA",
	"HEXA", "PRISM", "PYRAMID", "POLYGON", "POLYHEDRON",
}

func (t ElementType) String() string {
	if t < 0 || int(t) >= len(elementNames) {
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
	return elementNames[t]
}

type Node struct {
	ID       int
	Position utils.Vec3
}

// Element is a mesh cell. Boundary elements, which carry one dimension
// less than the simulation, only survive long enough to transfer their
// physical tag to the matching face; they are removed from the element
// list once boundaries are assigned.
type Element struct {
	ID        int
	Type      ElementType
	Dimension int
	Tags      []int
	Boundary  bool

	NNodes int
	NFaces int
	Nodes  []int // 0-based node indices; polyhedra use the face-size prefixed layout
	Faces  []int
	// Neighbors[f] is the element across face f, -1 on boundaries.
	Neighbors []int

	Centroid utils.Vec3
	Volume   float64

	// Least squares reconstruction geometry, one entry per face.
	D  []utils.Vec3 // centroid to neighbor centroid
	Df []utils.Vec3 // centroid to face centroid
	W  []utils.Vec3 // weighted D
	S  [3][3]float64
}

// Face is a half face owned by one element. When two elements share the
// same node set, Neighbor and Opposite link the two halves; boundary
// faces keep -1 and carry the boundary index in Flag.
type Face struct {
	ID       int
	Owner    int
	Neighbor int
	Opposite int
	Flag     int

	NNodes   int
	Nodes    []int
	Centroid utils.Vec3
	Area     float64

	Normal utils.Vec3
	T1, T2 utils.Vec3
}

type Mesh struct {
	NNodes      int
	NElements   int
	NFaces      int
	NBoundaries int

	Nodes    []Node
	Elements []Element
	Faces    []Face
}

// Read loads the mesh file named in the input and computes all derived
// geometry. Boundary faces are flagged from the input boundary regions
// first, then overridden by the physical tags of boundary elements.
func Read(in *input.Input, log logging.Logger) (*Mesh, error) {
	start := time.Now()

	filename := in.Mesh.MeshFile
	log.Debug("opening mesh file", "file", filename)
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open mesh file %s: %w", filename, err)
	}
	defer f.Close()
	log.Info("reading mesh", "file", filename)

	m := &Mesh{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if err := m.readNodes(scanner, log); err != nil {
		return nil, err
	}
	if err := m.readElements(scanner, log); err != nil {
		return nil, err
	}

	if err := m.computeElements(in, log); err != nil {
		return nil, err
	}
	m.computeFaces(log)
	m.assignBoundaries(in, log)
	m.computeNormals(log)
	if err := m.computeDistances(in, log); err != nil {
		return nil, err
	}

	log.Info("mesh loaded", "elapsed", time.Since(start).Round(time.Millisecond))
	return m, nil
}

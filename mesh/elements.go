package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/utils"
)

// intCursor walks the whitespace separated integer fields of an element
// line.
type intCursor struct {
	fields []string
	pos    int
	err    error
}

func (c *intCursor) next() int {
	if c.err != nil {
		return 0
	}
	if c.pos >= len(c.fields) {
		c.err = fmt.Errorf("truncated element line")
		return 0
	}
	v, err := strconv.Atoi(c.fields[c.pos])
	if err != nil {
		c.err = err
		return 0
	}
	c.pos++
	return v
}

// readElements scans for the $Elements section and parses one element
// per line: id, type, tag count, tags, then the type dependent
// connectivity. Node references are converted to 0-based indices.
func (m *Mesh) readElements(scanner *bufio.Scanner, log logging.Logger) error {
	log.Debug("reading elements")

	var counts [10]int

	for scanner.Scan() {
		if !strings.HasPrefix(scanner.Text(), "$Elements") {
			continue
		}
		if !scanner.Scan() {
			return fmt.Errorf("could not read number of elements")
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n <= 0 {
			return fmt.Errorf("no elements found")
		}
		m.NElements = n
		m.Elements = make([]Element, n)

		for i := 0; i < n; i++ {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected end of file at element %d", i)
			}
			c := &intCursor{fields: strings.Fields(scanner.Text())}

			id := c.next()
			typ := ElementType(c.next())
			nTags := c.next()
			var tags []int
			if nTags > 0 {
				tags = make([]int, nTags)
				for t := 0; t < nTags; t++ {
					tags[t] = c.next()
				}
			}

			var (
				nNodes, nFaces, dim int
				nodes               []int
			)

			if typ == Polyhedron {
				dim = 3
				nFaces = c.next()
				for f := 0; f < nFaces; f++ {
					faceNodes := c.next()
					nNodes += faceNodes
					nodes = append(nodes, faceNodes)
					for k := 0; k < faceNodes; k++ {
						nodes = append(nodes, c.next()-1)
					}
				}
			} else {
				switch typ {
				case Point:
					nNodes, nFaces, dim = 1, 0, 0
				case Linear:
					nNodes, nFaces, dim = 2, 2, 1
				case Tria:
					nNodes, nFaces, dim = 3, 3, 2
				case Quad:
					nNodes, nFaces, dim = 4, 4, 2
				case Tetra:
					nNodes, nFaces, dim = 4, 4, 3
				case Hexa:
					nNodes, nFaces, dim = 8, 6, 3
				case Prism:
					nNodes, nFaces, dim = 6, 5, 3
				case Pyramid:
					nNodes, nFaces, dim = 5, 5, 3
				case Polygon:
					dim = 2
					nFaces = c.next()
					nNodes = nFaces
				default:
					return fmt.Errorf("unsupported element type: %d", typ)
				}

				nodes = make([]int, nNodes)
				for k := 0; k < nNodes; k++ {
					nodes[k] = c.next() - 1
				}
			}
			if c.err != nil {
				return fmt.Errorf("element %d: %w", i, c.err)
			}

			elem := &m.Elements[i]
			elem.ID = id
			elem.Type = typ
			elem.Dimension = dim
			elem.Tags = tags
			elem.NNodes = nNodes
			elem.NFaces = nFaces
			elem.Nodes = nodes

			counts[typ]++
		}

		log.Info("read elements", "count", n)
		for t, c := range counts {
			if c > 0 {
				log.Info("element type", "type", ElementType(t).String(), "count", c)
			}
		}
		return scanner.Err()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("no $Elements section found in mesh file")
}

// effectiveDim maps the input dimension code to the spatial dimension
// of the interior elements. Axisymmetric runs on a 2D mesh.
func effectiveDim(code int) int {
	switch code {
	case input.Dim3D:
		return 3
	case input.Dim1D:
		return 1
	default:
		return 2
	}
}

// computeElements validates element dimensions against the simulation
// dimension, marks boundary elements, and computes volume and centroid
// for interior elements.
func (m *Mesh) computeElements(in *input.Input, log logging.Logger) error {
	log.Debug("computing element properties")

	dimension := effectiveDim(in.Physics.Dimension)

	for i := range m.Elements {
		elem := &m.Elements[i]
		if elem.Dimension > dimension || elem.Dimension < dimension-1 {
			return fmt.Errorf("invalid element dimension %d for element %d",
				elem.Dimension, elem.ID)
		}
		if elem.Dimension == dimension-1 {
			if len(elem.Tags) == 0 {
				return fmt.Errorf("boundary element %d has no tags", elem.ID)
			}
			elem.Boundary = true
			elem.NFaces = 0
		}
	}

	pm := utils.NewPartitionMap(in.Numerical.NThreads, m.NElements)
	pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			elem := &m.Elements[i]
			if elem.Boundary {
				continue
			}

			n := make([]utils.Vec3, elem.NNodes)
			if elem.Type != Polyhedron {
				for j := 0; j < elem.NNodes; j++ {
					n[j] = m.Nodes[elem.Nodes[j]].Position
				}
			}

			switch elem.Type {
			case Point:
				elem.Centroid = n[0]
				elem.Volume = 1.0
			case Linear:
				elem.Centroid = utils.MidPoint(n[0], n[1])
				elem.Volume = utils.Distance(n[0], n[1])
			case Tria:
				elem.Centroid = triaCentroid(n[0], n[1], n[2])
				elem.Volume = triaVector(n[0], n[1], n[2]).Norm()
			case Quad, Polygon:
				elem.Centroid, elem.Volume = polygonProperties(n)
			case Tetra:
				elem.Centroid = tetraCentroid(n[0], n[1], n[2], n[3])
				elem.Volume = tetraVolume(n[0], n[1], n[2], n[3])
			case Hexa:
				elem.Centroid, elem.Volume = hexaProperties(n)
			case Prism:
				elem.Centroid, elem.Volume = prismProperties(n)
			case Pyramid:
				elem.Centroid, elem.Volume = pyramidProperties(n)
			case Polyhedron:
				elem.Centroid, elem.Volume = m.polyhedronProperties(elem.NFaces, elem.Nodes)
			}
		}
	})

	volumes := make([]float64, 0, m.NElements)
	for i := range m.Elements {
		if m.Elements[i].Boundary {
			continue
		}
		volumes = append(volumes, m.Elements[i].Volume)
	}
	if len(volumes) == 0 {
		return fmt.Errorf("mesh has no interior elements")
	}
	minVolume := floats.Min(volumes)
	maxVolume := floats.Max(volumes)
	log.Info("element volumes", "min", minVolume, "max", maxVolume)
	if minVolume < in.Mesh.MinVolume {
		return fmt.Errorf("minimum cell volume is too small (%g)", minVolume)
	}
	return nil
}

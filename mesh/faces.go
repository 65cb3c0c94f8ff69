package mesh

import (
	"sort"
	"strconv"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/utils"
)

// faceKey builds an order independent key from a face's node set so the
// two half faces of an interior face collide in a map.
func faceKey(nodes []int) string {
	key := make([]int, len(nodes))
	copy(key, nodes)
	sort.Ints(key)
	var b []byte
	for _, n := range key {
		b = strconv.AppendInt(b, int64(n), 10)
		b = append(b, ',')
	}
	return string(b)
}

// computeFaces builds the half face list: every interior element emits
// one face per local face with area and centroid, then connectivity
// pairs the halves.
func (m *Mesh) computeFaces(log logging.Logger) {
	log.Debug("counting faces")
	for i := range m.Elements {
		m.NFaces += m.Elements[i].NFaces
	}
	m.Faces = make([]Face, m.NFaces)

	log.Debug("computing face properties")
	id := 0
	for i := range m.Elements {
		elem := &m.Elements[i]
		elem.Faces = make([]int, elem.NFaces)

		for f := 0; f < elem.NFaces; f++ {
			elem.Faces[f] = id
			face := &m.Faces[id]
			face.ID = id
			face.Owner = i
			face.Neighbor = -1
			face.Opposite = -1
			face.Flag = -1
			id++

			switch elem.Type {
			case Linear:
				face.NNodes = 1
				face.Nodes = []int{elem.Nodes[f]}
				face.Centroid = m.Nodes[face.Nodes[0]].Position
				face.Area = 1.0

			case Tria, Quad, Polygon:
				face.NNodes = 2
				face.Nodes = []int{
					elem.Nodes[f],
					elem.Nodes[(f+1)%elem.NNodes],
				}
				n1 := m.Nodes[face.Nodes[0]].Position
				n2 := m.Nodes[face.Nodes[1]].Position
				face.Centroid = utils.MidPoint(n1, n2)
				face.Area = utils.Distance(n1, n2)

			case Tetra:
				face.NNodes = 3
				face.Nodes = make([]int, 3)
				n := make([]utils.Vec3, 3)
				for j := 0; j < 3; j++ {
					face.Nodes[j] = elem.Nodes[(f+j)%elem.NNodes]
					n[j] = m.Nodes[face.Nodes[j]].Position
				}
				face.Centroid = triaCentroid(n[0], n[1], n[2])
				face.Area = triaVector(n[0], n[1], n[2]).Norm()

			case Hexa:
				m.fillShapeFace(face, elem, hexaIndex[f*4:f*4+4])

			case Prism:
				if f < 3 {
					m.fillShapeFace(face, elem, prismIndex[f*4:f*4+4])
				} else {
					m.fillShapeFace(face, elem, prismIndex[12+3*(f-3):12+3*(f-3)+3])
				}

			case Pyramid:
				if f < 1 {
					m.fillShapeFace(face, elem, pyramidIndex[0:4])
				} else {
					m.fillShapeFace(face, elem, pyramidIndex[4+3*(f-1):4+3*(f-1)+3])
				}

			case Polyhedron:
				offset := 0
				for ff := 0; ff < f; ff++ {
					offset += elem.Nodes[offset] + 1
				}
				face.NNodes = elem.Nodes[offset]
				face.Nodes = make([]int, face.NNodes)
				n := make([]utils.Vec3, face.NNodes)
				for k := 0; k < face.NNodes; k++ {
					face.Nodes[k] = elem.Nodes[offset+1+k]
					n[k] = m.Nodes[face.Nodes[k]].Position
				}
				face.Centroid, face.Area = polygonProperties(n)
			}
		}
	}

	log.Info("loaded faces", "count", m.NFaces)

	log.Debug("computing face connectivity")
	m.computeFaceConnectivity(log)
}

// fillShapeFace resolves a local connectivity table slice (1-based)
// into face nodes and computes the polygon properties.
func (m *Mesh) fillShapeFace(face *Face, elem *Element, local []int) {
	face.NNodes = len(local)
	face.Nodes = make([]int, face.NNodes)
	n := make([]utils.Vec3, face.NNodes)
	for j, li := range local {
		face.Nodes[j] = elem.Nodes[li-1]
		n[j] = m.Nodes[face.Nodes[j]].Position
	}
	if face.NNodes == 3 {
		face.Centroid = triaCentroid(n[0], n[1], n[2])
		face.Area = triaVector(n[0], n[1], n[2]).Norm()
		return
	}
	face.Centroid, face.Area = polygonProperties(n)
}

// computeFaceConnectivity pairs half faces sharing the same node set,
// setting neighbor elements and opposite face indices, then flattens
// the neighbor lists onto the elements.
func (m *Mesh) computeFaceConnectivity(log logging.Logger) {
	faceMap := make(map[string]int, m.NFaces/2)

	for i := 0; i < m.NFaces; i++ {
		face := &m.Faces[i]
		key := faceKey(face.Nodes)

		other, ok := faceMap[key]
		if !ok {
			faceMap[key] = i
			continue
		}
		o := &m.Faces[other]
		face.Neighbor = o.Owner
		o.Neighbor = face.Owner
		face.Opposite = o.ID
		o.Opposite = face.ID
		delete(faceMap, key)
	}

	log.Debug("assigning element neighbors")
	for i := range m.Elements {
		elem := &m.Elements[i]
		elem.Neighbors = make([]int, elem.NFaces)
		for f := 0; f < elem.NFaces; f++ {
			elem.Neighbors[f] = m.Faces[elem.Faces[f]].Neighbor
		}
	}
}

// initBoundaries flags every face whose centroid falls inside one of
// the input boundary regions with that boundary's index. Later regions
// win on overlap.
func (m *Mesh) initBoundaries(in *input.Input) {
	for i := range m.Faces {
		c := m.Faces[i].Centroid
		for b := range in.BC.Boundaries {
			if in.BC.Boundaries[b].Contains(c) {
				m.Faces[i].Flag = b
			}
		}
	}
}

// assignBoundaries counts unpaired faces, flags them from the input
// regions, overrides the flags with the physical tags of boundary
// elements, and finally drops the boundary elements from the mesh.
func (m *Mesh) assignBoundaries(in *input.Input, log logging.Logger) {
	log.Debug("counting boundary faces")
	m.NBoundaries = 0
	for i := range m.Faces {
		if m.Faces[i].Neighbor == -1 {
			m.NBoundaries++
		}
	}
	log.Info("found boundary faces", "count", m.NBoundaries)

	log.Debug("assigning boundary conditions")
	m.initBoundaries(in)

	faceMap := make(map[string]int, m.NFaces)
	for f := 0; f < m.NFaces; f++ {
		faceMap[faceKey(m.Faces[f].Nodes)] = f
	}

	for i := range m.Elements {
		elem := &m.Elements[i]
		if !elem.Boundary {
			continue
		}
		if f, ok := faceMap[faceKey(elem.Nodes)]; ok {
			m.Faces[f].Flag = elem.Tags[0]
		}
	}

	// Drop boundary elements and remap the element indices stored on
	// faces and neighbor lists to the compacted numbering.
	remap := make([]int, len(m.Elements))
	kept := m.Elements[:0]
	for i := range m.Elements {
		if m.Elements[i].Boundary {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, m.Elements[i])
	}
	m.Elements = kept
	m.NElements = len(m.Elements)

	for f := range m.Faces {
		face := &m.Faces[f]
		face.Owner = remap[face.Owner]
		if face.Neighbor >= 0 {
			face.Neighbor = remap[face.Neighbor]
		}
	}
	for i := range m.Elements {
		elem := &m.Elements[i]
		for f := range elem.Neighbors {
			if elem.Neighbors[f] >= 0 {
				elem.Neighbors[f] = remap[elem.Neighbors[f]]
			}
		}
	}
}

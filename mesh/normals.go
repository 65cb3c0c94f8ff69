package mesh

import (
	"math"

	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/utils"
)

// computeNormals assigns each face a unit normal pointing out of its
// owner element, then a pair of orthonormal tangents completing a
// right-handed face frame.
func (m *Mesh) computeNormals(log logging.Logger) {
	log.Debug("computing face normals")

	for i := range m.Elements {
		elem := &m.Elements[i]
		c := elem.Centroid

		switch elem.Type {
		case Point:

		case Linear:
			for _, fi := range elem.Faces {
				face := &m.Faces[fi]
				face.Normal = face.Centroid.Sub(c).Normalize()
			}

		case Tria, Quad, Polygon:
			for _, fi := range elem.Faces {
				face := &m.Faces[fi]

				// Edge direction, then project out the in-plane
				// component of the centroid offset to get the outward
				// normal.
				t := m.Nodes[face.Nodes[1]].Position.Sub(m.Nodes[face.Nodes[0]].Position)
				b := c.Sub(face.Centroid)
				n := b.Cross(t).Cross(t)
				if b.Dot(n) > 0 {
					n = n.Scale(-1)
				}
				face.Normal = n.Normalize()
			}

		default:
			for _, fi := range elem.Faces {
				face := &m.Faces[fi]

				var H utils.Vec3
				for _, ni := range face.Nodes {
					H = H.Add(m.Nodes[ni].Position)
				}
				H = H.Scale(1.0 / float64(face.NNodes))

				var n utils.Vec3
				for j := 0; j < face.NNodes; j++ {
					k := (j + 1) % face.NNodes
					v1 := m.Nodes[face.Nodes[j]].Position.Sub(H)
					v2 := m.Nodes[face.Nodes[k]].Position.Sub(H)
					n = n.Add(v1.Cross(v2))
				}

				b := c.Sub(face.Centroid)
				if b.Dot(n) > 0 {
					n = n.Scale(-1)
				}
				face.Normal = n.Normalize()
			}
		}
	}

	log.Debug("computing face tangents")
	for i := range m.Faces {
		face := &m.Faces[i]
		n := face.Normal

		// Branch-free tangent construction: pick the permutation that
		// avoids degeneracy when the normal is near the z axis.
		delta := 0
		if math.Abs(n[2]) >= 0.5 {
			delta = 1
		}
		a1, a2 := float64(delta), float64(1-delta)

		t1d := math.Sqrt(n[0]*n[0] + a2*n[1]*n[1] + a1*n[2]*n[2])
		face.T1 = utils.Vec3{
			(a1*n[2] - a2*n[1]) / t1d,
			a2 * n[0] / t1d,
			-a1 * n[0] / t1d,
		}
		face.T2 = n.Cross(face.T1)
	}
}

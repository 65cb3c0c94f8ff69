package mesh

import "github.com/alessio26gas/eulerfv/utils"

// Local face connectivity tables, 1-based as in the mesh file format.
// Hexa faces are the six quads, prisms carry three quads then two
// triangles, pyramids one quad then four triangles.
var hexaIndex = [24]int{
	1, 2, 3, 4,
	1, 5, 6, 2,
	1, 4, 8, 5,
	2, 6, 7, 3,
	3, 7, 8, 4,
	5, 8, 7, 6,
}

var prismIndex = [18]int{
	1, 4, 6, 3,
	2, 3, 6, 5,
	1, 2, 5, 4,
	3, 2, 1,
	4, 5, 6,
}

var pyramidIndex = [16]int{
	4, 3, 2, 1,
	1, 2, 5,
	2, 3, 5,
	3, 4, 5,
	4, 1, 5,
}

// addTetra accumulates the volume and volume weighted centroid of the
// tetrahedron (a, b, c, d) into the running totals.
func addTetra(a, b, c, d utils.Vec3, totalVolume *float64, centroidSum *utils.Vec3) {
	vol := tetraVolume(a, b, c, d)
	tc := tetraCentroid(a, b, c, d)
	*centroidSum = centroidSum.Add(tc.Scale(vol))
	*totalVolume += vol
}

func triaCentroid(p1, p2, p3 utils.Vec3) utils.Vec3 {
	return utils.Vec3{
		(p1[0] + p2[0] + p3[0]) / 3.0,
		(p1[1] + p2[1] + p3[1]) / 3.0,
		(p1[2] + p2[2] + p3[2]) / 3.0,
	}
}

// triaVector returns the oriented surface vector of a triangle, normal
// to its plane with magnitude equal to its area.
func triaVector(p1, p2, p3 utils.Vec3) utils.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1)).Scale(0.5)
}

func tetraCentroid(p1, p2, p3, p4 utils.Vec3) utils.Vec3 {
	return utils.Vec3{
		(p1[0] + p2[0] + p3[0] + p4[0]) / 4.0,
		(p1[1] + p2[1] + p3[1] + p4[1]) / 4.0,
		(p1[2] + p2[2] + p3[2] + p4[2]) / 4.0,
	}
}

func tetraVolume(p1, p2, p3, p4 utils.Vec3) float64 {
	dot := p2.Sub(p1).Dot(p3.Sub(p1).Cross(p4.Sub(p1)))
	if dot < 0 {
		dot = -dot
	}
	return dot / 6.0
}

// polygonProperties returns the centroid and area of a planar polygon
// by fanning triangles around the vertex mean.
func polygonProperties(nodes []utils.Vec3) (utils.Vec3, float64) {
	n := len(nodes)

	var h utils.Vec3
	for _, p := range nodes {
		h = h.Add(p)
	}
	h = h.Scale(1.0 / float64(n))

	var (
		sTot      utils.Vec3
		centroid  utils.Vec3
		totalArea float64
	)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		s := triaVector(h, nodes[i], nodes[j])
		sTot = sTot.Add(s)
		area := s.Norm()
		totalArea += area
		centroid = centroid.Add(triaCentroid(h, nodes[i], nodes[j]).Scale(area))
	}
	centroid = centroid.Scale(1.0 / totalArea)

	return centroid, sTot.Norm()
}

// quadFan decomposes a quad face into four tetrahedra around the shape
// centroid H and the face centroid, accumulating volume and centroid.
func quadFan(H utils.Vec3, p [4]utils.Vec3, totalVolume *float64, centroidSum *utils.Vec3) {
	var h utils.Vec3
	for i := 0; i < 4; i++ {
		h = h.Add(p[i])
	}
	h = h.Scale(0.25)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		addTetra(H, h, p[i], p[j], totalVolume, centroidSum)
	}
}

func hexaProperties(nodes []utils.Vec3) (utils.Vec3, float64) {
	var H utils.Vec3
	for _, p := range nodes {
		H = H.Add(p)
	}
	H = H.Scale(1.0 / 8.0)

	var (
		totalVolume float64
		centroid    utils.Vec3
	)
	for f := 0; f < 6; f++ {
		var p [4]utils.Vec3
		for i := 0; i < 4; i++ {
			p[i] = nodes[hexaIndex[f*4+i]-1]
		}
		quadFan(H, p, &totalVolume, &centroid)
	}

	return centroid.Scale(1.0 / totalVolume), totalVolume
}

func prismProperties(nodes []utils.Vec3) (utils.Vec3, float64) {
	var H utils.Vec3
	for _, p := range nodes {
		H = H.Add(p)
	}
	H = H.Scale(1.0 / 6.0)

	var (
		totalVolume float64
		centroid    utils.Vec3
	)
	for f := 0; f < 3; f++ {
		var p [4]utils.Vec3
		for i := 0; i < 4; i++ {
			p[i] = nodes[prismIndex[f*4+i]-1]
		}
		quadFan(H, p, &totalVolume, &centroid)
	}
	for f := 3; f < 5; f++ {
		base := 12 + (f-3)*3
		addTetra(H,
			nodes[prismIndex[base]-1],
			nodes[prismIndex[base+1]-1],
			nodes[prismIndex[base+2]-1],
			&totalVolume, &centroid)
	}

	return centroid.Scale(1.0 / totalVolume), totalVolume
}

func pyramidProperties(nodes []utils.Vec3) (utils.Vec3, float64) {
	var H utils.Vec3
	for _, p := range nodes {
		H = H.Add(p)
	}
	H = H.Scale(1.0 / 5.0)

	var (
		totalVolume float64
		centroid    utils.Vec3
	)
	var p [4]utils.Vec3
	for i := 0; i < 4; i++ {
		p[i] = nodes[pyramidIndex[i]-1]
	}
	quadFan(H, p, &totalVolume, &centroid)

	for f := 1; f < 5; f++ {
		base := 4 + (f-1)*3
		addTetra(H,
			nodes[pyramidIndex[base]-1],
			nodes[pyramidIndex[base+1]-1],
			nodes[pyramidIndex[base+2]-1],
			&totalVolume, &centroid)
	}

	return centroid.Scale(1.0 / totalVolume), totalVolume
}

// polyhedronProperties computes centroid and volume of a general
// polyhedron given in the face-size prefixed node layout, decomposing
// each face into tetrahedra around the vertex mean.
func (m *Mesh) polyhedronProperties(nFaces int, nodes []int) (utils.Vec3, float64) {
	var (
		H             utils.Vec3
		totalVertices int
	)
	index := 0
	for f := 0; f < nFaces; f++ {
		N := nodes[index]
		index++
		for i := 0; i < N; i++ {
			H = H.Add(m.Nodes[nodes[index]].Position)
			index++
		}
		totalVertices += N
	}
	H = H.Scale(1.0 / float64(totalVertices))

	var (
		totalVolume float64
		centroid    utils.Vec3
	)
	index = 0
	for f := 0; f < nFaces; f++ {
		N := nodes[index]
		index++
		face := nodes[index : index+N]
		index += N

		var h utils.Vec3
		for _, vi := range face {
			h = h.Add(m.Nodes[vi].Position)
		}
		h = h.Scale(1.0 / float64(N))

		for i := 0; i < N; i++ {
			j := (i + 1) % N
			a := m.Nodes[face[i]].Position
			b := m.Nodes[face[j]].Position
			addTetra(H, h, a, b, &totalVolume, &centroid)
		}
	}

	return centroid.Scale(1.0 / totalVolume), totalVolume
}

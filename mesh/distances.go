package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/utils"
)

// computeDistances fills the least squares reconstruction geometry of
// every element: centroid-to-face vectors, centroid-to-neighbor
// vectors, inverse distance weights, and the inverted normal matrix S
// used to solve the weighted least squares gradient system. The matrix
// rank follows the spatial dimension, with identity padding on the
// unused axes.
func (m *Mesh) computeDistances(in *input.Input, log logging.Logger) error {
	dim := effectiveDim(in.Physics.Dimension)

	log.Debug("computing distances")

	perr := make([]error, len(m.Elements))
	pm := utils.NewPartitionMap(in.Numerical.NThreads, m.NElements)
	pm.RunParallel(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			if err := m.elementDistances(i, dim); err != nil {
				perr[i] = err
			}
		}
	})
	for _, err := range perr {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) elementDistances(i, dim int) error {
	elem := &m.Elements[i]
	nf := elem.NFaces

	elem.D = make([]utils.Vec3, nf)
	elem.Df = make([]utils.Vec3, nf)
	elem.W = make([]utils.Vec3, nf)

	var S [3][3]float64
	for f := 0; f < nf; f++ {
		face := &m.Faces[elem.Faces[f]]
		elem.Df[f] = face.Centroid.Sub(elem.Centroid)

		j := elem.Neighbors[f]
		if j < 0 {
			continue
		}
		d := m.Elements[j].Centroid.Sub(elem.Centroid)
		elem.D[f] = d

		w := 1.0 / d.Dot(d)
		elem.W[f] = d.Scale(w)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				S[a][b] += elem.W[f][a] * d[b]
			}
		}
	}

	switch dim {
	case 3:
		var inv mat.Dense
		A := mat.NewDense(3, 3, []float64{
			S[0][0], S[0][1], S[0][2],
			S[1][0], S[1][1], S[1][2],
			S[2][0], S[2][1], S[2][2],
		})
		if err := inv.Inverse(A); err != nil {
			return fmt.Errorf("element %d: singular reconstruction matrix: %w",
				elem.ID, err)
		}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				elem.S[a][b] = inv.At(a, b)
			}
		}

	case 2:
		var inv mat.Dense
		A := mat.NewDense(2, 2, []float64{
			S[0][0], S[0][1],
			S[1][0], S[1][1],
		})
		if err := inv.Inverse(A); err != nil {
			return fmt.Errorf("element %d: singular reconstruction matrix: %w",
				elem.ID, err)
		}
		elem.S[0][0] = inv.At(0, 0)
		elem.S[0][1] = inv.At(0, 1)
		elem.S[1][0] = inv.At(1, 0)
		elem.S[1][1] = inv.At(1, 1)
		elem.S[2][2] = 1.0

	default:
		if S[0][0] == 0 {
			return fmt.Errorf("element %d: singular reconstruction matrix", elem.ID)
		}
		elem.S[0][0] = 1.0 / S[0][0]
		elem.S[1][1] = 1.0
		elem.S[2][2] = 1.0
	}
	return nil
}

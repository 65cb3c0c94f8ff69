// Package euler implements a cell centered finite volume solver for
// the compressible Euler equations on unstructured meshes. States are
// conservative vectors (rho, rho*u, rho*v, rho*w, E); faces carry
// reconstructed states and Riemann fluxes in a local normal-tangent
// frame. Time integration is explicit multistage with a CFL limited
// timestep.
package euler

import (
	"math"

	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/mesh"
	"github.com/alessio26gas/eulerfv/utils"
)

// nVar is the number of conservative variables.
const nVar = 5

// Fields holds all solution storage as flat row-major slices, one row
// of nVar entries per element or face.
type Fields struct {
	NElements int
	NFaces    int
	Dim       int

	W    []float64 // conservative variables
	Wold []float64 // previous iteration
	S    []float64 // source terms
	Rhs  []float64 // flux balance

	GradW []utils.Vec3 // per element, per variable gradients

	Wf []float64 // face reconstructed states
	F  []float64 // face fluxes
}

// Init allocates all field arrays sized to the mesh.
func (f *Fields) Init(m *mesh.Mesh, in *input.Input, log logging.Logger) {
	f.NElements = m.NElements
	f.NFaces = m.NFaces

	switch in.Physics.Dimension {
	case input.Dim3D:
		f.Dim = 3
	case input.Dim1D:
		f.Dim = 1
	default:
		f.Dim = 2
	}

	log.Debug("allocating fields", "elements", f.NElements, "faces", f.NFaces)
	f.W = make([]float64, f.NElements*nVar)
	f.Wold = make([]float64, f.NElements*nVar)
	f.S = make([]float64, f.NElements*nVar)
	f.Rhs = make([]float64, f.NElements*nVar)
	f.GradW = make([]utils.Vec3, f.NElements*nVar)
	f.Wf = make([]float64, f.NFaces*nVar)
	f.F = make([]float64, f.NFaces*nVar)
}

// PrepareSolutionUpdate snapshots the current solution before a new
// timestep so every stage advances from the same base state.
func (f *Fields) PrepareSolutionUpdate() {
	copy(f.Wold, f.W)
}

// Residuals returns the L1 norm of the flux balance per variable.
func (f *Fields) Residuals() (res [nVar]float64) {
	for i := 0; i < f.NElements; i++ {
		for v := 0; v < nVar; v++ {
			res[v] += math.Abs(f.Rhs[i*nVar+v])
		}
	}
	return
}

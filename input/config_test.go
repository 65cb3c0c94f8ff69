package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alessio26gas/eulerfv/utils"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadKeyValue(t *testing.T) {
	content := `# test configuration
dimension = 1
mesh_file = wedge.msh

R = 287.0
gamma = 1.4

time_stages = 3
a = 0.15, 0.5, 1.0
CFL = 0.9         # inline comment
maxtime = 0.01
maxiter = 5000
nthreads = 2
reconstruction = 1
limiter = 3
riemann = 2

initial_variables = 0
p_0 = 101325
T_0 = 300
u_0 = 50

n_boundaries = 2
bc_1 = 0
bc_1_var_1 = 2.5
bc_1_var_2 = 101325
bc_1_var_3 = 300
bc_2 = 5

output_folder = results
output_name = wedge
prints_delay = 25
`
	in, err := Load(writeConfig(t, "run.cfg", content))
	require.NoError(t, err)

	assert.Equal(t, Dim2D, in.Physics.Dimension)
	assert.Equal(t, "wedge.msh", in.Mesh.MeshFile)
	assert.Equal(t, 3, in.Numerical.TimeStages)
	assert.Equal(t, []float64{0.15, 0.5, 1.0}, in.Numerical.A)
	assert.Equal(t, 0.9, in.Numerical.CFL)
	assert.Equal(t, 5000, in.Numerical.MaxIter)
	assert.Equal(t, 2, in.Numerical.NThreads)
	assert.Equal(t, ReconstructionMUSCL, in.Numerical.Reconstruction)
	assert.Equal(t, LimiterVenkatakrishnan, in.Numerical.Limiter)
	assert.Equal(t, RiemannHLLC, in.Numerical.Riemann)

	// rho = p/(R T), E = p/(gamma-1) + rho u^2/2
	rho := 101325.0 / 287.0 / 300.0
	assert.InDelta(t, rho, in.Init.W0[0], 1.0e-12)
	assert.InDelta(t, rho*50.0, in.Init.W0[1], 1.0e-12)
	assert.InDelta(t, 101325.0/0.4+0.5*rho*2500.0, in.Init.W0[4], 1.0e-9)

	require.Len(t, in.BC.Boundaries, 2)
	assert.Equal(t, BCSupersonicInlet, in.BC.Boundaries[0].Type)
	assert.Equal(t, 2.5, in.BC.Boundaries[0].Value[0])
	assert.Equal(t, BCWall, in.BC.Boundaries[1].Type)

	assert.Equal(t, "results", in.Output.OutputFolder)
	assert.Equal(t, "wedge", in.Output.OutputName)
	assert.Equal(t, 25, in.Output.PrintsDelay)
	// Unset keys keep their defaults.
	assert.Equal(t, 1000, in.Output.OutputDelay)
}

func TestLoadYAML(t *testing.T) {
	content := `dimension: 3
mesh_file: box.msh
CFL: 0.5
time_stages: 2
a: [0.5, 1.0]
nthreads: 1
n_probes: 1
probe_1: [0.1, 0.2, 0.3]
`
	in, err := Load(writeConfig(t, "run.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, Dim3D, in.Physics.Dimension)
	assert.Equal(t, "box.msh", in.Mesh.MeshFile)
	assert.Equal(t, []float64{0.5, 1.0}, in.Numerical.A)
	require.Len(t, in.Output.Probes, 1)
	assert.InDelta(t, 0.2, in.Output.Probes[0].Location[1], 1.0e-12)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"missing mesh":     "dimension = 1\n",
		"bad dimension":    "dimension = 7\nmesh_file = a.msh\n",
		"stage mismatch":   "dimension = 1\nmesh_file = a.msh\ntime_stages = 2\n",
		"bad limiter":      "dimension = 1\nmesh_file = a.msh\nlimiter = 9\n",
		"bad bc type":      "dimension = 1\nmesh_file = a.msh\nn_boundaries = 1\nbc_1 = 42\n",
		"missing restart":  "dimension = 1\nmesh_file = a.msh\nrestart = 1\n",
		"bad report index": "dimension = 1\nmesh_file = a.msh\nn_reports = 1\nreport_1 = 3\n",
	}
	for name, content := range cases {
		_, err := Load(writeConfig(t, "bad.cfg", content))
		assert.Error(t, err, name)
	}
}

func TestSingleStageCoefficient(t *testing.T) {
	in, err := Load(writeConfig(t, "run.cfg", "dimension = 1\nmesh_file = a.msh\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, in.Numerical.A)
}

func TestParseVector(t *testing.T) {
	v, err := ParseVector("[1.0, 2.5, -3]")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.5, -3.0}, v)

	v, err = ParseVector("0.15 0.5 1.0")
	require.NoError(t, err)
	assert.Len(t, v, 3)

	_, err = ParseVector("1.0, nope")
	assert.Error(t, err)
}

func TestBlockInside(t *testing.T) {
	b := unboundedBlock()
	b.XMin, b.XMax = 0.0, 1.0
	assert.True(t, b.Inside(utils.Vec3{0.5, 100.0, -4.0}))
	assert.False(t, b.Inside(utils.Vec3{1.5, 0.0, 0.0}))
}

func TestBoundaryContains(t *testing.T) {
	bc := unboundedBoundary()
	bc.YMin, bc.YMax = 0.0, 0.0
	// Faces sitting exactly on the plane are captured.
	assert.True(t, bc.Contains(utils.Vec3{2.0, 0.0, -1.0}))
	assert.False(t, bc.Contains(utils.Vec3{0.0, 0.5, 0.0}))
}

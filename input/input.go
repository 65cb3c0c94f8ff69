// Package input holds the run configuration for the solver: physics
// selection, fluid properties, numerical scheme selectors, initial and
// boundary conditions, and output cadence. The configuration file is a
// flat key=value listing ('#' starts a comment); the same keys may also
// be supplied as a YAML document.
package input

import (
	"math"

	"github.com/alessio26gas/eulerfv/utils"
)

// Dimension codes accepted by the "dimension" key.
const (
	Dim1D           = 0
	Dim2D           = 1
	DimAxisymmetric = 2
	Dim3D           = 3
)

// Reconstruction selects the face-state reconstruction scheme.
type Reconstruction int

const (
	ReconstructionConstant Reconstruction = iota
	ReconstructionMUSCL
)

// Limiter selects the MUSCL slope limiter.
type Limiter int

const (
	LimiterMinmod Limiter = iota
	LimiterSuperbee
	LimiterVanLeer
	LimiterVenkatakrishnan
	LimiterModVenkatakrishnan
)

// Riemann selects the approximate Riemann solver.
type Riemann int

const (
	RiemannRusanov Riemann = iota
	RiemannHLL
	RiemannHLLC
)

// BCType enumerates the boundary condition variants. The numeric values
// are the codes used in configuration files.
type BCType int

const (
	BCSupersonicInlet BCType = iota
	BCSupersonicOutlet
	BCStagnationInlet
	BCSubsonicInlet
	BCPressureOutlet
	BCWall
	BCSymmetry
	BCSlipWall
	BCMovingWall
	BCAxis
)

// Initial state specification modes.
const (
	TemperatureBased = 0
	DensityBased     = 1
)

type Physics struct {
	Dimension int // one of the Dim* codes
}

type MeshSettings struct {
	MeshFile  string
	MinVolume float64 // smallest allowed cell volume
}

type Fluid struct {
	R     float64 // gas constant [J/(kg K)]
	Gamma float64 // specific heat ratio
}

type Numerical struct {
	TimeStages     int       // number of explicit stages
	A              []float64 // stage coefficients, len == TimeStages
	CFL            float64
	MaxTime        float64
	MaxIter        int
	Reconstruction Reconstruction
	Limiter        Limiter
	Riemann        Riemann
	NThreads       int // parallel degree, 0 = runtime.NumCPU()
}

// Block is a spatial override region for the initial condition: the
// intersection of an axis-aligned box and a sphere.
type Block struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	Center     utils.Vec3
	Radius     float64
	W0         [5]float64
}

// Inside reports whether p falls within the block's predicate.
func (b *Block) Inside(p utils.Vec3) bool {
	return p[0] >= b.XMin && p[0] <= b.XMax &&
		p[1] >= b.YMin && p[1] <= b.YMax &&
		p[2] >= b.ZMin && p[2] <= b.ZMax &&
		utils.Distance(p, b.Center) < b.Radius
}

type InitialConditions struct {
	Restart     bool
	RestartFile string
	Variables   int // TemperatureBased or DensityBased
	W0          [5]float64
	Blocks      []Block
}

// Boundary pairs a boundary type with a spatial predicate selecting the
// faces it applies to and up to five type-dependent parameters. State
// and the flow angles Alpha and Phi (radians, from the degree-valued
// parameters) are derived once at solver initialization for the inlet
// types; Value keeps the configured parameters untouched.
type Boundary struct {
	ID         int
	Type       BCType
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	Center     utils.Vec3
	Radius     float64
	Value      [5]float64
	State      [5]float64
	Alpha, Phi float64
}

// Contains reports whether the face centroid c lies inside the
// boundary's box-and-sphere predicate, with a small tolerance so faces
// sitting exactly on the box planes are captured.
func (b *Boundary) Contains(c utils.Vec3) bool {
	const eps = 1e-12
	return c[0] < b.XMax+eps && c[0] > b.XMin-eps &&
		c[1] < b.YMax+eps && c[1] > b.YMin-eps &&
		c[2] < b.ZMax+eps && c[2] > b.ZMin-eps &&
		utils.Distance(c, b.Center) < b.Radius+eps
}

type BoundaryConditions struct {
	Boundaries []Boundary
}

// Output file format codes.
const (
	FormatVTKBin = 0
	FormatVTK    = 1
	FormatCSV    = 2
)

// Restart file format codes.
const (
	RestartBin   = 0
	RestartASCII = 1
)

type Probe struct {
	Location utils.Vec3
	Element  int // nearest element, resolved at initialization
}

type Report struct {
	Boundary int        // boundary index the report integrates over
	CG       utils.Vec3 // moment reference point
}

type OutputSettings struct {
	Format          int
	RestartFormat   int
	OutputDelay     int
	PrintsDelay     int
	PrintsInfoDelay int
	RestartDelay    int
	ProbeDelay      int
	ReportDelay     int
	OutputFolder    string
	OutputName      string
	Probes          []Probe
	Reports         []Report
}

type LogSettings struct {
	Verbosity int // 0=error .. 3=debug
	LogFile   string
}

type Input struct {
	Physics   Physics
	Mesh      MeshSettings
	Fluid     Fluid
	Numerical Numerical
	Init      InitialConditions
	BC        BoundaryConditions
	Output    OutputSettings
	Log       LogSettings
}

// unbounded returns a Block/Boundary extent covering all of space.
func unboundedBlock() Block {
	return Block{
		XMin: -math.MaxFloat64, XMax: math.MaxFloat64,
		YMin: -math.MaxFloat64, YMax: math.MaxFloat64,
		ZMin: -math.MaxFloat64, ZMax: math.MaxFloat64,
		Radius: math.MaxFloat64,
	}
}

func unboundedBoundary() Boundary {
	return Boundary{
		Type: BCSymmetry,
		XMin: -math.MaxFloat64, XMax: math.MaxFloat64,
		YMin: -math.MaxFloat64, YMax: math.MaxFloat64,
		ZMin: -math.MaxFloat64, ZMax: math.MaxFloat64,
		Radius: math.MaxFloat64,
	}
}

// NewInput returns an Input carrying the documented defaults.
func NewInput() *Input {
	return &Input{
		Fluid: Fluid{R: 287.0, Gamma: 1.4},
		Numerical: Numerical{
			TimeStages:     1,
			A:              []float64{1.0},
			CFL:            0.5,
			MaxTime:        math.MaxFloat64,
			MaxIter:        math.MaxInt32,
			Reconstruction: ReconstructionMUSCL,
			Limiter:        LimiterVenkatakrishnan,
			Riemann:        RiemannHLLC,
		},
		Output: OutputSettings{
			OutputDelay:     1000,
			PrintsDelay:     10,
			PrintsInfoDelay: 200,
			RestartDelay:    1000,
			ProbeDelay:      10,
			ReportDelay:     10,
			OutputFolder:    "output",
			OutputName:      "output",
		},
		Log: LogSettings{Verbosity: 2},
	}
}

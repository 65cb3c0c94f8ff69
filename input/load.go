package input

import (
	"fmt"
	"runtime"
	"strconv"
)

func loadLog(c *config, in *Input) {
	c.getInt("verbosity", &in.Log.Verbosity)
	c.getString("log_file", &in.Log.LogFile)
}

func loadPhysics(c *config, in *Input) {
	c.getInt("dimension", &in.Physics.Dimension)
}

func loadMesh(c *config, in *Input) {
	c.getString("mesh_file", &in.Mesh.MeshFile)
	c.getFloat("min_volume", &in.Mesh.MinVolume)
}

func loadFluid(c *config, in *Input) {
	c.getFloat("R", &in.Fluid.R)
	c.getFloat("gamma", &in.Fluid.Gamma)
}

func loadNumerical(c *config, in *Input) {
	num := &in.Numerical
	c.getInt("time_stages", &num.TimeStages)
	if s, ok := c.m["a"]; ok && c.err == nil {
		a, err := ParseVector(s)
		if err != nil {
			c.err = fmt.Errorf("key a: %w", err)
			return
		}
		num.A = a
	}
	c.getFloat("CFL", &num.CFL)
	c.getFloat("maxtime", &num.MaxTime)
	c.getInt("maxiter", &num.MaxIter)
	c.getInt("nthreads", &num.NThreads)

	var rec, lim, rie int
	rec, lim, rie = int(num.Reconstruction), int(num.Limiter), int(num.Riemann)
	c.getInt("reconstruction", &rec)
	c.getInt("limiter", &lim)
	c.getInt("riemann", &rie)
	num.Reconstruction = Reconstruction(rec)
	num.Limiter = Limiter(lim)
	num.Riemann = Riemann(rie)
}

func loadOutput(c *config, in *Input) {
	out := &in.Output
	c.getInt("output_format", &out.Format)
	c.getInt("restart_format", &out.RestartFormat)
	c.getInt("output_delay", &out.OutputDelay)
	c.getInt("prints_delay", &out.PrintsDelay)
	c.getInt("prints_info_delay", &out.PrintsInfoDelay)
	c.getInt("restart_delay", &out.RestartDelay)
	c.getInt("probe_delay", &out.ProbeDelay)
	c.getInt("report_delay", &out.ReportDelay)
	c.getString("output_folder", &out.OutputFolder)
	c.getString("output_name", &out.OutputName)

	var nProbes int
	c.getInt("n_probes", &nProbes)
	out.Probes = make([]Probe, nProbes)
	for p := 0; p < nProbes; p++ {
		key := "probe_" + strconv.Itoa(p+1)
		c.getVec3(key, &out.Probes[p].Location)
	}

	var nReports int
	c.getInt("n_reports", &nReports)
	out.Reports = make([]Report, nReports)
	for r := 0; r < nReports; r++ {
		key := "report_" + strconv.Itoa(r+1)
		c.getInt(key, &out.Reports[r].Boundary)
		c.getVec3(key+"_cg", &out.Reports[r].CG)
	}
}

func loadInit(c *config, in *Input) {
	ic := &in.Init
	c.getBool("restart", &ic.Restart)
	if ic.Restart {
		c.getString("restart_file", &ic.RestartFile)
		return
	}
	c.getInt("initial_variables", &ic.Variables)

	// Reference background state; omitted keys keep these defaults.
	rho0, p0, T0 := 1.0, 101325.0, 300.0
	u0, v0, w0 := 0.0, 0.0, 0.0
	c.getFloat("rho_0", &rho0)
	c.getFloat("p_0", &p0)
	c.getFloat("T_0", &T0)
	c.getFloat("u_0", &u0)
	c.getFloat("v_0", &v0)
	c.getFloat("w_0", &w0)
	if c.err != nil {
		return
	}
	w, err := conservativeState(in, ic.Variables, rho0, p0, T0, u0, v0, w0)
	if err != nil {
		c.err = err
		return
	}
	ic.W0 = w

	var nBlocks int
	c.getInt("additional_blocks", &nBlocks)
	ic.Blocks = make([]Block, nBlocks)
	for b := 0; b < nBlocks; b++ {
		blk := unboundedBlock()
		sfx := "_" + strconv.Itoa(b+1)
		c.getFloat("rho"+sfx, &rho0)
		c.getFloat("p"+sfx, &p0)
		c.getFloat("T"+sfx, &T0)
		c.getFloat("u"+sfx, &u0)
		c.getFloat("v"+sfx, &v0)
		c.getFloat("w"+sfx, &w0)
		c.getFloat("xmin"+sfx, &blk.XMin)
		c.getFloat("xmax"+sfx, &blk.XMax)
		c.getFloat("ymin"+sfx, &blk.YMin)
		c.getFloat("ymax"+sfx, &blk.YMax)
		c.getFloat("zmin"+sfx, &blk.ZMin)
		c.getFloat("zmax"+sfx, &blk.ZMax)
		c.getVec3("center"+sfx, &blk.Center)
		c.getFloat("radius"+sfx, &blk.Radius)
		if c.err != nil {
			return
		}
		w, err := conservativeState(in, ic.Variables, rho0, p0, T0, u0, v0, w0)
		if err != nil {
			c.err = err
			return
		}
		blk.W0 = w
		ic.Blocks[b] = blk
	}
}

// conservativeState converts a primitive specification to the
// conservative state vector. Depending on the mode, density is derived
// from pressure and temperature or taken as given.
func conservativeState(in *Input, mode int, rho, p, T, u, v, w float64) ([5]float64, error) {
	switch mode {
	case TemperatureBased:
		rho = p / T / in.Fluid.R
	case DensityBased:
		// pressure and density prescribed, temperature implied
	default:
		return [5]float64{}, fmt.Errorf("invalid initial_variables value %d", mode)
	}
	k := 0.5 * (u*u + v*v + w*w)
	return [5]float64{
		rho,
		rho * u,
		rho * v,
		rho * w,
		p/(in.Fluid.Gamma-1.0) + rho*k,
	}, nil
}

func loadBC(c *config, in *Input) {
	var n int
	c.getInt("n_boundaries", &n)
	in.BC.Boundaries = make([]Boundary, n)
	for b := 0; b < n; b++ {
		bc := unboundedBoundary()
		key := "bc_" + strconv.Itoa(b+1)
		var t = int(bc.Type)
		c.getInt(key, &t)
		bc.Type = BCType(t)
		c.getInt(key+"_id", &bc.ID)
		c.getFloat(key+"_xmin", &bc.XMin)
		c.getFloat(key+"_xmax", &bc.XMax)
		c.getFloat(key+"_ymin", &bc.YMin)
		c.getFloat(key+"_ymax", &bc.YMax)
		c.getFloat(key+"_zmin", &bc.ZMin)
		c.getFloat(key+"_zmax", &bc.ZMax)
		c.getVec3(key+"_center", &bc.Center)
		c.getFloat(key+"_radius", &bc.Radius)
		for j := 0; j < 5; j++ {
			c.getFloat(key+"_var_"+strconv.Itoa(j+1), &bc.Value[j])
		}
		in.BC.Boundaries[b] = bc
	}
}

// validate applies the load-time fatal checks: unknown enum codes,
// stage-coefficient mismatches, missing required files.
func validate(in *Input) error {
	if in.Physics.Dimension < Dim1D || in.Physics.Dimension > Dim3D {
		return fmt.Errorf("invalid dimension %d", in.Physics.Dimension)
	}
	if in.Mesh.MeshFile == "" {
		return fmt.Errorf("no mesh file specified")
	}
	if in.Init.Restart && in.Init.RestartFile == "" {
		return fmt.Errorf("restart file path not found")
	}

	num := &in.Numerical
	if num.NThreads <= 0 {
		num.NThreads = runtime.NumCPU()
	}
	switch num.Reconstruction {
	case ReconstructionConstant, ReconstructionMUSCL:
	default:
		return fmt.Errorf("unknown reconstruction scheme %d", num.Reconstruction)
	}
	switch num.Limiter {
	case LimiterMinmod, LimiterSuperbee, LimiterVanLeer,
		LimiterVenkatakrishnan, LimiterModVenkatakrishnan:
	default:
		return fmt.Errorf("unknown limiter %d", num.Limiter)
	}
	switch num.Riemann {
	case RiemannRusanov, RiemannHLL, RiemannHLLC:
	default:
		return fmt.Errorf("unknown Riemann solver %d", num.Riemann)
	}

	switch {
	case num.TimeStages == 1:
		num.A = []float64{1.0}
	case num.TimeStages > 1:
		if len(num.A) != num.TimeStages {
			return fmt.Errorf(
				"number of stage coefficients (%d) does not match the number of time stages (%d)",
				len(num.A), num.TimeStages)
		}
	default:
		return fmt.Errorf("invalid number of time stages %d", num.TimeStages)
	}

	for b := range in.BC.Boundaries {
		bc := &in.BC.Boundaries[b]
		if bc.Type < BCSupersonicInlet || bc.Type > BCAxis {
			return fmt.Errorf("unknown boundary condition type %d", bc.Type)
		}
	}

	for r := range in.Output.Reports {
		rp := &in.Output.Reports[r]
		if rp.Boundary < 0 || rp.Boundary >= len(in.BC.Boundaries) {
			return fmt.Errorf("report %d references unknown boundary %d", r+1, rp.Boundary)
		}
	}
	return nil
}

package output

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/alessio26gas/eulerfv/euler"
)

// primitives converts the conservative state of element i to the
// sampled quantities: density, velocity, pressure, temperature and
// Mach number.
func primitives(sim *euler.Simulation, i int) (rho, u, v, w, p, T, M float64) {
	gam := sim.Input.Fluid.Gamma
	R := sim.Input.Fluid.R

	W := sim.Fields.W[i*5 : i*5+5]
	rho = W[0]
	u = W[1] / rho
	v = W[2] / rho
	w = W[3] / rho
	v2 := u*u + v*v + w*w
	p = (gam - 1.0) * (W[4] - 0.5*rho*v2)
	T = p / rho / R
	M = math.Sqrt(v2 / (gam * R * T))
	return
}

// writeCSV writes one row per element with centroid coordinates and
// primitive flow quantities.
func (w *FileWriter) writeCSV(sim *euler.Simulation, path string) error {
	w.log.Info("saving solution as CSV", "file", path+".csv")

	m := sim.Mesh

	f, err := os.Create(path + ".csv")
	if err != nil {
		return fmt.Errorf("creating solution file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	fmt.Fprintf(bw, "X,Y,Z,Density,VelocityX,VelocityY,VelocityZ,Pressure,Temperature,Mach\n")

	for i := 0; i < m.NElements; i++ {
		c := m.Elements[i].Centroid
		rho, u, v, vw, p, T, M := primitives(sim, i)
		fmt.Fprintf(bw, "%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e\n",
			c[0], c[1], c[2], rho, u, v, vw, p, T, M)
	}

	return bw.Flush()
}

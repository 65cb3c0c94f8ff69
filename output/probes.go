package output

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/alessio26gas/eulerfv/euler"
	"github.com/alessio26gas/eulerfv/utils"
)

// InitProbes resolves each probe to the element whose centroid is
// nearest to the requested location and opens the probes CSV stream.
func (w *FileWriter) InitProbes(sim *euler.Simulation) error {
	w.log.Debug("initializing probes")

	m := sim.Mesh
	probes := sim.Input.Output.Probes

	for p := range probes {
		loc := probes[p].Location
		minDist := math.MaxFloat64
		for i := 0; i < m.NElements; i++ {
			d := utils.Distance(m.Elements[i].Centroid, loc)
			if d < minDist {
				minDist = d
				probes[p].Element = i
			}
		}
	}

	path := filepath.Join(w.dir, w.name+"_probes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating probes file: %w", err)
	}
	w.probesFile = f
	w.probes = bufio.NewWriter(f)

	fmt.Fprintf(w.probes, "time,X,Y,Z,Density,VelocityX,VelocityY,VelocityZ,Pressure,Temperature,Mach\n")
	return nil
}

// SaveProbes appends one row per probe with the primitive quantities
// sampled at its resolved element.
func (w *FileWriter) SaveProbes(sim *euler.Simulation) error {
	w.log.Debug("saving probes data")

	t := sim.Status.Time
	for _, probe := range sim.Input.Output.Probes {
		c := sim.Mesh.Elements[probe.Element].Centroid
		rho, u, v, vw, p, T, M := primitives(sim, probe.Element)
		fmt.Fprintf(w.probes, "%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e\n",
			t, c[0], c[1], c[2], rho, u, v, vw, p, T, M)
	}
	return nil
}

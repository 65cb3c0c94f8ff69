package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alessio26gas/eulerfv/euler"
	"github.com/alessio26gas/eulerfv/utils"
)

// InitReports opens the reports CSV stream.
func (w *FileWriter) InitReports(sim *euler.Simulation) error {
	w.log.Debug("initializing reports")

	path := filepath.Join(w.dir, w.name+"_reports.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating reports file: %w", err)
	}
	w.reportsFile = f
	w.reports = bufio.NewWriter(f)

	fmt.Fprintf(w.reports, "time,boundary,mdot,Fx,Fy,Fz,Mx,My,Mz\n")
	return nil
}

// SaveReports integrates the stored face fluxes over each report's
// boundary patch and appends one row per report. The mass flow is the
// density flux sum, the force is the momentum flux sum, and the moment
// is the sum of r x F with r taken from the moment reference point to
// the face centroid. Boundary indices are written 1-based.
func (w *FileWriter) SaveReports(sim *euler.Simulation) error {
	w.log.Debug("saving reports")

	m := sim.Mesh
	fields := &sim.Fields
	t := sim.Status.Time

	for _, report := range sim.Input.Output.Reports {
		var mdot float64
		var force, moment utils.Vec3

		for f := 0; f < m.NFaces; f++ {
			face := &m.Faces[f]
			if face.Flag != report.Boundary {
				continue
			}
			mdot += fields.F[f*5]
			df := utils.Vec3{fields.F[f*5+1], fields.F[f*5+2], fields.F[f*5+3]}
			r := face.Centroid.Sub(report.CG)
			force = force.Add(df)
			moment = moment.Add(r.Cross(df))
		}

		fmt.Fprintf(w.reports, "%.7e,%d,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e,%.7e\n",
			t, report.Boundary+1, mdot,
			force[0], force[1], force[2],
			moment[0], moment[1], moment[2])
	}
	return nil
}

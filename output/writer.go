// Package output persists solver results. It implements the
// euler.Writer contract with solution snapshots in VTK or CSV form,
// restart files in ASCII or binary form, and persistent CSV streams
// for probe and report time histories.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alessio26gas/eulerfv/euler"
	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
)

// FileWriter writes all solver output below a single directory using a
// common base name. Probe and report streams stay open between saves
// and are flushed on Close.
type FileWriter struct {
	format        int
	restartFormat int
	dir           string
	name          string

	log logging.Logger

	probesFile  *os.File
	probes      *bufio.Writer
	reportsFile *os.File
	reports     *bufio.Writer
}

var _ euler.Writer = (*FileWriter)(nil)

// NewFileWriter creates the output directory and returns a writer
// configured from the output settings.
func NewFileWriter(in *input.Input, log logging.Logger) (*FileWriter, error) {
	out := &in.Output
	if err := os.MkdirAll(out.OutputFolder, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &FileWriter{
		format:        out.Format,
		restartFormat: out.RestartFormat,
		dir:           out.OutputFolder,
		name:          out.OutputName,
		log:           log,
	}, nil
}

// solutionPath returns the snapshot path for the given iteration,
// without extension.
func (w *FileWriter) solutionPath(iter int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%06d", w.name, iter))
}

func (w *FileWriter) restartPath() string {
	return filepath.Join(w.dir, w.name+".restart")
}

// SaveSolution writes a snapshot of the current solution in the
// configured format.
func (w *FileWriter) SaveSolution(sim *euler.Simulation) error {
	path := w.solutionPath(sim.Status.Iteration)
	switch w.format {
	case input.FormatVTKBin:
		return w.writeVTKBin(sim, path)
	case input.FormatVTK:
		return w.writeVTKASCII(sim, path)
	case input.FormatCSV:
		return w.writeCSV(sim, path)
	default:
		return fmt.Errorf("unsupported output format %d", w.format)
	}
}

// SaveRestart overwrites the restart file with the current state.
func (w *FileWriter) SaveRestart(sim *euler.Simulation) error {
	path := w.restartPath()
	switch w.restartFormat {
	case input.RestartBin:
		return w.writeRestartBin(sim, path)
	case input.RestartASCII:
		return w.writeRestartASCII(sim, path)
	default:
		return fmt.Errorf("unsupported restart format %d", w.restartFormat)
	}
}

// Close flushes and closes the probe and report streams.
func (w *FileWriter) Close() error {
	var first error
	if w.probes != nil {
		if err := w.probes.Flush(); err != nil && first == nil {
			first = err
		}
		if err := w.probesFile.Close(); err != nil && first == nil {
			first = err
		}
		w.probes, w.probesFile = nil, nil
	}
	if w.reports != nil {
		if err := w.reports.Flush(); err != nil && first == nil {
			first = err
		}
		if err := w.reportsFile.Close(); err != nil && first == nil {
			first = err
		}
		w.reports, w.reportsFile = nil, nil
	}
	return first
}

package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alessio26gas/eulerfv/euler"
)

// Restart file headers. The first line identifies the encoding of the
// state block that follows the common text header.
const (
	restartHeaderASCII = "# EULERFV Restart File"
	restartHeaderBin   = "# EULERFV BIN File"
)

// writeRestartASCII writes iteration, time, element count and variable
// count followed by one whitespace separated state row per element.
func (w *FileWriter) writeRestartASCII(sim *euler.Simulation, path string) error {
	w.log.Info("saving restart file", "file", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating restart file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	fmt.Fprintf(bw, "%s\n", restartHeaderASCII)
	fmt.Fprintf(bw, "%d\n%.7e\n%d\n%d\n",
		sim.Status.Iteration, sim.Status.Time, sim.Mesh.NElements, 5)

	for i := 0; i < sim.Mesh.NElements; i++ {
		for v := 0; v < 5; v++ {
			fmt.Fprintf(bw, "%.7e ", sim.Fields.W[i*5+v])
		}
		fmt.Fprintf(bw, "\n")
	}

	return bw.Flush()
}

// writeRestartBin writes the same text header followed by the raw
// little-endian float64 state buffer.
func (w *FileWriter) writeRestartBin(sim *euler.Simulation, path string) error {
	w.log.Info("saving restart file", "file", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating restart file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	fmt.Fprintf(bw, "%s\n", restartHeaderBin)
	fmt.Fprintf(bw, "%d\n%.7e\n%d\n%d\n",
		sim.Status.Iteration, sim.Status.Time, sim.Mesh.NElements, 5)

	if err := binary.Write(bw, binary.LittleEndian, sim.Fields.W); err != nil {
		return fmt.Errorf("writing restart data: %w", err)
	}

	return bw.Flush()
}

// LoadRestart resumes a previous run from the configured restart file.
// The file format is detected from the header line. The saved iteration
// count extends the iteration limit so the resumed run performs the
// full number of additional iterations.
func (w *FileWriter) LoadRestart(sim *euler.Simulation) error {
	path := sim.Input.Init.RestartFile
	w.log.Info("loading restart file", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening restart file: %w", err)
	}
	defer f.Close()
	br := bufio.NewReader(f)

	header, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading restart header: %w", err)
	}
	header = strings.TrimSpace(header)

	var binaryData bool
	switch header {
	case restartHeaderASCII:
		binaryData = false
	case restartHeaderBin:
		binaryData = true
	default:
		return fmt.Errorf("restart file header not recognized: %q", header)
	}

	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading restart header values: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	line, err := readLine()
	if err != nil {
		return err
	}
	iter, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("parsing restart iteration: %w", err)
	}

	if line, err = readLine(); err != nil {
		return err
	}
	t, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return fmt.Errorf("parsing restart time: %w", err)
	}

	if line, err = readLine(); err != nil {
		return err
	}
	nElements, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("parsing restart element count: %w", err)
	}
	if nElements != sim.Mesh.NElements {
		return fmt.Errorf("restart element count mismatch: file has %d, mesh has %d",
			nElements, sim.Mesh.NElements)
	}

	if line, err = readLine(); err != nil {
		return err
	}
	nVars, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("parsing restart variable count: %w", err)
	}
	if nVars != 5 {
		return fmt.Errorf("restart variable count mismatch: file has %d, expected 5", nVars)
	}

	if binaryData {
		if err := binary.Read(br, binary.LittleEndian, sim.Fields.W); err != nil {
			return fmt.Errorf("reading restart data: %w", err)
		}
	} else {
		scanner := bufio.NewScanner(br)
		scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
		scanner.Split(bufio.ScanWords)
		for i := range sim.Fields.W {
			if !scanner.Scan() {
				return fmt.Errorf("restart data truncated at value %d", i)
			}
			val, err := strconv.ParseFloat(scanner.Text(), 64)
			if err != nil {
				return fmt.Errorf("parsing restart data at value %d: %w", i, err)
			}
			sim.Fields.W[i] = val
		}
	}

	sim.Input.Numerical.MaxIter += iter
	sim.Status.Iteration = iter
	sim.Status.Time = t

	w.log.Debug("restart file loaded", "iteration", iter, "time", t)
	return nil
}

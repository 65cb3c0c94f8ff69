package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/alessio26gas/eulerfv/euler"
	"github.com/alessio26gas/eulerfv/mesh"
)

// vtkCellType maps element shapes to legacy VTK cell type codes.
func vtkCellType(t mesh.ElementType) int {
	switch t {
	case mesh.Linear:
		return 3
	case mesh.Tria:
		return 5
	case mesh.Polygon:
		return 7
	case mesh.Quad:
		return 9
	case mesh.Tetra:
		return 10
	case mesh.Hexa:
		return 12
	case mesh.Prism:
		return 13
	case mesh.Pyramid:
		return 14
	default:
		return 42
	}
}

// cellIndexCount returns the number of integers an element contributes
// to the CELLS section, including its leading size entry.
func cellIndexCount(elem *mesh.Element) int {
	if elem.Type == mesh.Polyhedron {
		size := 1
		pos := 0
		for f := 0; f < elem.NFaces; f++ {
			faceNodes := elem.Nodes[pos]
			pos += 1 + faceNodes
			size += 1 + faceNodes
		}
		return 1 + size
	}
	return elem.NNodes + 1
}

func totalCellIndices(m *mesh.Mesh) int {
	total := 0
	for i := range m.Elements {
		total += cellIndexCount(&m.Elements[i])
	}
	return total
}

// WriteVTKASCII writes the mesh and solution as a legacy ASCII VTK
// unstructured grid with cell centered Density, Momentum and Energy.
func (w *FileWriter) writeVTKASCII(sim *euler.Simulation, path string) error {
	w.log.Info("saving solution as VTK ASCII", "file", path+".vtk")

	m := sim.Mesh
	fields := &sim.Fields

	f, err := os.Create(path + ".vtk")
	if err != nil {
		return fmt.Errorf("creating solution file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "CFD Solution\n")
	fmt.Fprintf(bw, "ASCII\n")
	fmt.Fprintf(bw, "DATASET UNSTRUCTURED_GRID\n")

	fmt.Fprintf(bw, "POINTS %d float\n", m.NNodes)
	for i := range m.Nodes {
		p := m.Nodes[i].Position
		fmt.Fprintf(bw, "%.7e %.7e %.7e\n", p[0], p[1], p[2])
	}

	fmt.Fprintf(bw, "CELLS %d %d\n", m.NElements, totalCellIndices(m))
	for i := range m.Elements {
		elem := &m.Elements[i]
		if elem.Type == mesh.Polyhedron {
			fmt.Fprintf(bw, "%d %d ", cellIndexCount(elem)-1, elem.NFaces)
			pos := 0
			for fc := 0; fc < elem.NFaces; fc++ {
				faceNodes := elem.Nodes[pos]
				pos++
				fmt.Fprintf(bw, "%d ", faceNodes)
				for fn := 0; fn < faceNodes; fn++ {
					fmt.Fprintf(bw, "%d ", elem.Nodes[pos])
					pos++
				}
			}
			fmt.Fprintf(bw, "\n")
		} else {
			fmt.Fprintf(bw, "%d ", elem.NNodes)
			for _, n := range elem.Nodes[:elem.NNodes] {
				fmt.Fprintf(bw, "%d ", n)
			}
			fmt.Fprintf(bw, "\n")
		}
	}

	fmt.Fprintf(bw, "CELL_TYPES %d\n", m.NElements)
	for i := range m.Elements {
		fmt.Fprintf(bw, "%d\n", vtkCellType(m.Elements[i].Type))
	}

	fmt.Fprintf(bw, "CELL_DATA %d\n", m.NElements)

	fmt.Fprintf(bw, "SCALARS Density float 1\n")
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i := 0; i < m.NElements; i++ {
		fmt.Fprintf(bw, "%.7e\n", fields.W[i*5])
	}

	fmt.Fprintf(bw, "VECTORS Momentum float\n")
	for i := 0; i < m.NElements; i++ {
		fmt.Fprintf(bw, "%.7e %.7e %.7e\n",
			fields.W[i*5+1], fields.W[i*5+2], fields.W[i*5+3])
	}

	fmt.Fprintf(bw, "SCALARS Energy float 1\n")
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i := 0; i < m.NElements; i++ {
		fmt.Fprintf(bw, "%.7e\n", fields.W[i*5+4])
	}

	return bw.Flush()
}

// WriteVTKBin writes the legacy binary VTK variant. Binary sections use
// big-endian 32-bit integers and floats as the format requires.
func (w *FileWriter) writeVTKBin(sim *euler.Simulation, path string) error {
	w.log.Info("saving solution as VTK binary", "file", path+".vtk")

	m := sim.Mesh
	fields := &sim.Fields

	f, err := os.Create(path + ".vtk")
	if err != nil {
		return fmt.Errorf("creating solution file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)

	putInt := func(v int) {
		binary.Write(bw, binary.BigEndian, int32(v))
	}
	putFloat := func(v float64) {
		binary.Write(bw, binary.BigEndian, float32(v))
	}

	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "CFD Solution\n")
	fmt.Fprintf(bw, "BINARY\n")
	fmt.Fprintf(bw, "DATASET UNSTRUCTURED_GRID\n")

	fmt.Fprintf(bw, "POINTS %d float\n", m.NNodes)
	for i := range m.Nodes {
		p := m.Nodes[i].Position
		putFloat(p[0])
		putFloat(p[1])
		putFloat(p[2])
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "CELLS %d %d\n", m.NElements, totalCellIndices(m))
	for i := range m.Elements {
		elem := &m.Elements[i]
		if elem.Type == mesh.Polyhedron {
			putInt(cellIndexCount(elem) - 1)
			putInt(elem.NFaces)
			pos := 0
			for fc := 0; fc < elem.NFaces; fc++ {
				faceNodes := elem.Nodes[pos]
				pos++
				putInt(faceNodes)
				for fn := 0; fn < faceNodes; fn++ {
					putInt(elem.Nodes[pos])
					pos++
				}
			}
		} else {
			putInt(elem.NNodes)
			for _, n := range elem.Nodes[:elem.NNodes] {
				putInt(n)
			}
		}
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "CELL_TYPES %d\n", m.NElements)
	for i := range m.Elements {
		putInt(vtkCellType(m.Elements[i].Type))
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "CELL_DATA %d\n", m.NElements)

	fmt.Fprintf(bw, "SCALARS Density float 1\n")
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i := 0; i < m.NElements; i++ {
		putFloat(fields.W[i*5])
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "SCALARS Energy float 1\n")
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i := 0; i < m.NElements; i++ {
		putFloat(fields.W[i*5+4])
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "VECTORS Momentum float\n")
	for i := 0; i < m.NElements; i++ {
		putFloat(fields.W[i*5+1])
		putFloat(fields.W[i*5+2])
		putFloat(fields.W[i*5+3])
	}
	fmt.Fprintf(bw, "\n")

	return bw.Flush()
}

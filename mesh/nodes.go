package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/alessio26gas/eulerfv/logging"
)

// readNodes scans for the $Nodes section and parses one node per line
// in the format "<id> <x> <y> <z>".
func (m *Mesh) readNodes(scanner *bufio.Scanner, log logging.Logger) error {
	log.Debug("reading nodes")

	for scanner.Scan() {
		if !strings.HasPrefix(scanner.Text(), "$Nodes") {
			continue
		}
		if !scanner.Scan() {
			return fmt.Errorf("could not read number of nodes")
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n <= 0 {
			return fmt.Errorf("no nodes found")
		}
		m.NNodes = n
		m.Nodes = make([]Node, n)

		for i := 0; i < n; i++ {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected end of file while reading node %d", i)
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) < 4 {
				return fmt.Errorf("malformed node line %q", scanner.Text())
			}
			node := &m.Nodes[i]
			node.ID, err = strconv.Atoi(fields[0])
			if err != nil {
				return fmt.Errorf("node %d: %w", i, err)
			}
			for d := 0; d < 3; d++ {
				node.Position[d], err = strconv.ParseFloat(fields[1+d], 64)
				if err != nil {
					return fmt.Errorf("node %d: %w", i, err)
				}
			}
		}

		log.Info("read nodes", "count", n)
		return scanner.Err()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("no $Nodes section found in mesh file")
}

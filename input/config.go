package input

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/alessio26gas/eulerfv/utils"
)

// parseConfigFile reads a key=value configuration file into a map.
// Blank lines and lines starting with '#' are ignored; inline comments
// after the value are stripped.
func parseConfigFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	defer f.Close()

	config := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		config[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}
	return config, nil
}

// parseYAMLFile accepts the same keys as the flat format from a YAML
// document and flattens the values to strings so both formats share one
// loading path.
func parseYAMLFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	config := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case []interface{}:
			parts := make([]string, len(val))
			for i, e := range val {
				parts[i] = fmt.Sprint(e)
			}
			config[k] = strings.Join(parts, ", ")
		default:
			config[k] = fmt.Sprint(v)
		}
	}
	return config, nil
}

// ParseVector parses a comma- or space-separated list of floats,
// tolerating surrounding brackets.
func ParseVector(s string) ([]float64, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]()")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	v := make([]float64, 0, len(fields))
	for _, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", f, err)
		}
		v = append(v, x)
	}
	return v, nil
}

// config wraps the raw key/value map with typed accessors. Each getter
// leaves the destination untouched when the key is absent, so defaults
// survive, and records the first conversion error.
type config struct {
	m   map[string]string
	err error
}

func (c *config) getInt(key string, dst *int) {
	s, ok := c.m[key]
	if !ok || c.err != nil {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.err = fmt.Errorf("key %s: %w", key, err)
		return
	}
	*dst = v
}

func (c *config) getFloat(key string, dst *float64) {
	s, ok := c.m[key]
	if !ok || c.err != nil {
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.err = fmt.Errorf("key %s: %w", key, err)
		return
	}
	*dst = v
}

func (c *config) getString(key string, dst *string) {
	if s, ok := c.m[key]; ok {
		*dst = s
	}
}

func (c *config) getBool(key string, dst *bool) {
	var v int
	if _, ok := c.m[key]; !ok {
		return
	}
	c.getInt(key, &v)
	*dst = v != 0
}

func (c *config) getVec3(key string, dst *utils.Vec3) {
	s, ok := c.m[key]
	if !ok || c.err != nil {
		return
	}
	v, err := ParseVector(s)
	if err != nil || len(v) > 3 {
		c.err = fmt.Errorf("key %s: invalid coordinates", key)
		return
	}
	copy(dst[:], v)
}

func (c *config) has(key string) bool {
	_, ok := c.m[key]
	return ok
}

// Load reads, parses and validates a configuration file. Files with a
// .yaml or .yml extension are treated as YAML; anything else as the
// flat key=value format.
func Load(path string) (*Input, error) {
	var (
		m   map[string]string
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = parseYAMLFile(path)
	default:
		m, err = parseConfigFile(path)
	}
	if err != nil {
		return nil, err
	}

	in := NewInput()
	c := &config{m: m}

	loadLog(c, in)
	loadPhysics(c, in)
	loadMesh(c, in)
	loadFluid(c, in)
	loadNumerical(c, in)
	loadOutput(c, in)
	loadInit(c, in)
	loadBC(c, in)
	if c.err != nil {
		return nil, c.err
	}
	return in, validate(in)
}

// Package catalog reads catalog documents: a project with its components,
// complexity levels and the hours of each pair.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matiisnothere-15/septjunto/internal/estimation"
)

//go:embed default.yaml
var defaultCatalog []byte

const (
	minRank  = 1
	maxRank  = 5
	maxHours = 1000
)

type Document struct {
	Project      ProjectEntry      `yaml:"project"`
	Complexities []ComplexityEntry `yaml:"complexities"`
	DefaultHours map[int]float64   `yaml:"default_hours"`
	Components   []ComponentEntry  `yaml:"components"`
}

type ProjectEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ComplexityEntry struct {
	Name string `yaml:"name"`
	Rank int    `yaml:"rank"`
}

type ComponentEntry struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Hours       map[int]float64 `yaml:"hours"`
}

// HoursFor returns the hours per complexity rank for a component: its own table
// when it has one, otherwise the document defaults.
func (d *Document) HoursFor(c ComponentEntry) map[int]float64 {
	if len(c.Hours) > 0 {
		return c.Hours
	}
	return d.DefaultHours
}

// Parse decodes and validates a YAML catalog document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	doc.normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Default returns the built-in reference catalog.
func Default() (*Document, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

func (d *Document) normalize() {
	d.Project.Name = strings.TrimSpace(d.Project.Name)
	d.Project.Description = strings.TrimSpace(d.Project.Description)
	for i := range d.Complexities {
		d.Complexities[i].Name = strings.TrimSpace(d.Complexities[i].Name)
	}
	roundHours(d.DefaultHours)
	for i := range d.Components {
		d.Components[i].Name = strings.TrimSpace(d.Components[i].Name)
		d.Components[i].Description = strings.TrimSpace(d.Components[i].Description)
		roundHours(d.Components[i].Hours)
	}
}

// roundHours stores hours with two decimals, as relations do.
func roundHours(hours map[int]float64) {
	for rank, h := range hours {
		hours[rank] = estimation.Round2(h)
	}
}

// Validate checks the document is self-consistent. Field formats are checked
// again when the entries are imported.
func (d *Document) Validate() error {
	if d.Project.Name == "" {
		return fmt.Errorf("catalog project name is required")
	}

	ranks := make(map[int]bool, len(d.Complexities))
	names := make(map[string]bool, len(d.Complexities))
	for _, c := range d.Complexities {
		if c.Name == "" {
			return fmt.Errorf("complexity with rank %d has no name", c.Rank)
		}
		if c.Rank < minRank || c.Rank > maxRank {
			return fmt.Errorf("complexity %q: rank %d outside %d..%d", c.Name, c.Rank, minRank, maxRank)
		}
		if ranks[c.Rank] {
			return fmt.Errorf("complexity rank %d listed twice", c.Rank)
		}
		if names[strings.ToLower(c.Name)] {
			return fmt.Errorf("complexity %q listed twice", c.Name)
		}
		ranks[c.Rank] = true
		names[strings.ToLower(c.Name)] = true
	}

	if err := checkHours("default_hours", d.DefaultHours); err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Components))
	for _, c := range d.Components {
		if c.Name == "" {
			return fmt.Errorf("component without a name")
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			return fmt.Errorf("component %q listed twice", c.Name)
		}
		seen[key] = true
		if err := checkHours(fmt.Sprintf("component %q", c.Name), c.Hours); err != nil {
			return err
		}
	}
	return nil
}

func checkHours(owner string, hours map[int]float64) error {
	for rank, h := range hours {
		h = estimation.Round2(h)
		if rank < minRank || rank > maxRank {
			return fmt.Errorf("%s: rank %d outside %d..%d", owner, rank, minRank, maxRank)
		}
		if h <= 0 || h > maxHours {
			return fmt.Errorf("%s: hours %.2f for rank %d must be in (0, %d]", owner, h, rank, maxHours)
		}
	}
	return nil
}

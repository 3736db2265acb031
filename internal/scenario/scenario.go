// Package scenario loads initial-population presets and spawns entities
// from them.
package scenario

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Point is a field coordinate, written as {x: 10, y: 20}.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is a spawn region. The zero Rect means the whole field.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) IsZero() bool { return r.W == 0 && r.H == 0 }

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Flock spawns Count boids, the first Predators of which hunt.
type Flock struct {
	Count         int    `yaml:"count"`
	Predators     int    `yaml:"predators"`
	Region        Rect   `yaml:"region"`
	Speed         Range  `yaml:"speed"`
	Color         string `yaml:"color"`
	PredatorColor string `yaml:"predator_color"`
}

// Line is a static segment that spins in place.
type Line struct {
	Pos   Point   `yaml:"pos"`
	Dir   Point   `yaml:"dir"`
	Rot   float64 `yaml:"rot"`
	Spin  float64 `yaml:"spin"` // degrees per second
	Color string  `yaml:"color"`
}

// Drifters spawns entities that move and wrap but ignore the flock.
type Drifters struct {
	Count  int    `yaml:"count"`
	Region Rect   `yaml:"region"`
	Speed  Range  `yaml:"speed"`
	Color  string `yaml:"color"`
}

// Scenario is one preset file.
type Scenario struct {
	Name     string     `yaml:"name"`
	Flocks   []Flock    `yaml:"flocks"`
	Lines    []Line     `yaml:"lines"`
	Drifters []Drifters `yaml:"drifters"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates scenario YAML.
func Parse(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	var errs []error
	for i, f := range sc.Flocks {
		if f.Count < 0 || f.Predators < 0 || f.Predators > f.Count {
			errs = append(errs, fmt.Errorf("flocks[%d]: need 0 <= predators (%d) <= count (%d)", i, f.Predators, f.Count))
		}
		errs = append(errs, checkRange(fmt.Sprintf("flocks[%d].speed", i), f.Speed))
		errs = append(errs, checkColor(fmt.Sprintf("flocks[%d].color", i), f.Color))
		errs = append(errs, checkColor(fmt.Sprintf("flocks[%d].predator_color", i), f.PredatorColor))
	}
	for i, l := range sc.Lines {
		errs = append(errs, checkColor(fmt.Sprintf("lines[%d].color", i), l.Color))
	}
	for i, d := range sc.Drifters {
		if d.Count < 0 {
			errs = append(errs, fmt.Errorf("drifters[%d]: negative count %d", i, d.Count))
		}
		errs = append(errs, checkRange(fmt.Sprintf("drifters[%d].speed", i), d.Speed))
		errs = append(errs, checkColor(fmt.Sprintf("drifters[%d].color", i), d.Color))
	}
	return errors.Join(errs...)
}

// Population is the number of entities the scenario spawns.
func (sc *Scenario) Population() int {
	n := len(sc.Lines)
	for _, f := range sc.Flocks {
		n += f.Count
	}
	for _, d := range sc.Drifters {
		n += d.Count
	}
	return n
}

func checkRange(field string, r Range) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%s: invalid range [%g, %g]", field, r.Min, r.Max)
	}
	return nil
}

func checkColor(field, s string) error {
	if _, err := ParseColor(s, color.RGBA{}); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// ParseColor decodes "#rrggbb" or "#rrggbbaa". An empty string yields def.
func ParseColor(s string, def color.RGBA) (color.RGBA, error) {
	if s == "" {
		return def, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

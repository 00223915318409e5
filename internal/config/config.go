// Package config holds the catalyst search configuration: the line-oriented
// directive format, its YAML equivalent, defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mad-cat/pkg/life"
)

var (
	// ErrNoPattern is returned when no background pattern is configured.
	ErrNoPattern = errors.New("no pattern configured")
	// ErrNoCatalysts is returned when no catalyst is configured.
	ErrNoCatalysts = errors.New("no catalysts configured")
	// ErrUnknownSymmetry is returned for unrecognized symmetry tags.
	ErrUnknownSymmetry = errors.New("unknown symmetry")
	// ErrUnknownDirective is returned for unrecognized directive lines.
	ErrUnknownDirective = errors.New("unknown directive")
)

// Unlimited disables the absence bound of a catalyst.
const Unlimited = -1

// Pattern places the background pattern on the torus.
type Pattern struct {
	RLE string `yaml:"rle"`
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
}

// Forbidden is a sub-pattern that must never appear at an offset relative to
// a catalyst's anchor.
type Forbidden struct {
	RLE string `yaml:"rle"`
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
}

// Catalyst describes one catalyst directive.
type Catalyst struct {
	RLE string `yaml:"rle"`
	// MaxAbsence is the longest run of generations the catalyst may be
	// missing; Unlimited disables the bound.
	MaxAbsence int         `yaml:"max_absence"`
	AnchorX    int         `yaml:"anchor_x"`
	AnchorY    int         `yaml:"anchor_y"`
	Symmetry   string      `yaml:"symmetry"`
	Forbidden  []Forbidden `yaml:"forbidden,omitempty"`
}

// Filter requires a sub-pattern at generation FromGen, or at some
// generation within [FromGen, ToGen] when ToGen > FromGen.
type Filter struct {
	FromGen int    `yaml:"from_gen"`
	ToGen   int    `yaml:"to_gen"`
	RLE     string `yaml:"rle"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
}

// IsRange reports whether the filter covers more than one generation.
func (f Filter) IsRange() bool { return f.ToGen > f.FromGen }

// Area is the rectangle scanned for catalyst anchors.
type Area struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Search is the complete configuration of one run.
type Search struct {
	Pattern        Pattern    `yaml:"pattern"`
	Catalysts      []Catalyst `yaml:"catalysts"`
	MaxGen         int        `yaml:"max_gen"`
	NumCatalysts   int        `yaml:"num_catalysts"`
	StableInterval int        `yaml:"stable_interval"`
	Area           Area       `yaml:"search_area"`

	// StartGen and LastGen bound the earliest activation of a configuration;
	// a zero LastGen means MaxGen.
	StartGen int `yaml:"start_gen"`
	LastGen  int `yaml:"last_gen"`

	// MaxWidth and MaxHeight bound the combined catalyst bounding box; zero
	// disables the bound.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	MaxCategorySize int      `yaml:"max_category_size"`
	CatDelta        int      `yaml:"cat_delta"`
	Filters         []Filter `yaml:"filters,omitempty"`
	Symmetry        string   `yaml:"symmetry"`
	Output          string   `yaml:"output"`
	FullReport      string   `yaml:"full_report"`
	Workers         int      `yaml:"workers"`
}

// DefaultSearch returns the standard configuration without pattern or
// catalysts.
func DefaultSearch() Search {
	return Search{
		MaxGen:          250,
		NumCatalysts:    1,
		StableInterval:  15,
		Area:            Area{X: -16, Y: -16, W: 32, H: 32},
		StartGen:        0,
		MaxCategorySize: 10,
		CatDelta:        14,
		Symmetry:        "C1",
		Output:          "results.rle",
		Workers:         runtime.NumCPU(),
	}
}

// Load reads a configuration file. Files ending in .yaml or .yml are decoded
// as YAML, everything else as directives.
func Load(path string) (Search, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Search{}, fmt.Errorf("read config: %w", err)
	}
	var s Search
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		s, err = ParseDirectives(string(data))
	}
	if err != nil {
		return Search{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Search{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseYAML decodes the YAML form on top of the defaults.
func ParseYAML(data []byte) (Search, error) {
	s := DefaultSearch()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Search{}, fmt.Errorf("decode yaml: %w", err)
	}
	return s, nil
}

// ToYAML renders the configuration in its YAML form.
func (s Search) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// ApplyMap overrides scalar settings from flag-style key/value pairs. Keys use
// the directive names; values that fail to parse keep the current setting.
func (s *Search) ApplyMap(cfg map[string]string) {
	if cfg == nil {
		return
	}
	ints := map[string]*int{
		"max-gen":           &s.MaxGen,
		"num-catalyst":      &s.NumCatalysts,
		"stable-interval":   &s.StableInterval,
		"start-gen":         &s.StartGen,
		"last-gen":          &s.LastGen,
		"max-category-size": &s.MaxCategorySize,
		"cat-delta":         &s.CatDelta,
		"workers":           &s.Workers,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["symmetry"]; ok && v != "" {
		s.Symmetry = v
	}
	if v, ok := cfg["output"]; ok {
		s.Output = v
	}
	if v, ok := cfg["full-report"]; ok {
		s.FullReport = v
	}
}

// Validate checks the configuration for the errors that are fatal at startup.
func (s *Search) Validate() error {
	if strings.TrimSpace(s.Pattern.RLE) == "" {
		return ErrNoPattern
	}
	pat, err := life.Parse(s.Pattern.RLE)
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	if pat.IsEmpty() {
		return ErrNoPattern
	}
	if len(s.Catalysts) == 0 {
		return ErrNoCatalysts
	}
	for i, c := range s.Catalysts {
		if _, err := life.Parse(c.RLE); err != nil {
			return fmt.Errorf("catalyst %d: %w", i, err)
		}
		if _, err := life.CatalystChain(c.Symmetry); err != nil {
			return fmt.Errorf("catalyst %d: %w %q", i, ErrUnknownSymmetry, c.Symmetry)
		}
		if c.MaxAbsence < Unlimited {
			return fmt.Errorf("catalyst %d: max absence %d must be >= -1", i, c.MaxAbsence)
		}
		for j, f := range c.Forbidden {
			if _, err := life.Parse(f.RLE); err != nil {
				return fmt.Errorf("catalyst %d forbidden %d: %w", i, j, err)
			}
		}
	}
	if _, err := life.GroupChain(s.Symmetry); err != nil {
		return fmt.Errorf("%w %q", ErrUnknownSymmetry, s.Symmetry)
	}
	if s.MaxGen <= 0 {
		return fmt.Errorf("max-gen must be positive, got %d", s.MaxGen)
	}
	if s.NumCatalysts <= 0 {
		return fmt.Errorf("num-catalyst must be positive, got %d", s.NumCatalysts)
	}
	if s.StableInterval <= 0 {
		return fmt.Errorf("stable-interval must be positive, got %d", s.StableInterval)
	}
	if s.Area.W <= 0 || s.Area.H <= 0 {
		return fmt.Errorf("search-area must have positive size, got %dx%d", s.Area.W, s.Area.H)
	}
	if s.Area.W > life.N || s.Area.H > life.N {
		return fmt.Errorf("search-area %dx%d is larger than the %dx%d torus", s.Area.W, s.Area.H, life.N, life.N)
	}
	if s.EffectiveLastGen() < s.StartGen {
		return fmt.Errorf("last-gen %d is before start-gen %d", s.LastGen, s.StartGen)
	}
	for i, f := range s.Filters {
		if _, err := life.Parse(f.RLE); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
		if f.ToGen != 0 && f.ToGen < f.FromGen {
			return fmt.Errorf("filter %d: range %d-%d is reversed", i, f.FromGen, f.ToGen)
		}
	}
	if s.Workers <= 0 {
		s.Workers = 1
	}
	return nil
}

// EffectiveLastGen returns LastGen, or MaxGen when LastGen is unset.
func (s *Search) EffectiveLastGen() int {
	if s.LastGen <= 0 || s.LastGen > s.MaxGen {
		return s.MaxGen
	}
	return s.LastGen
}

package life

import "strconv"

// Config controls the Life viewer simulation.
type Config struct {
	// RLE is the pattern shown at reset; empty means a random soup.
	RLE string
	// Catalysts marks cells whose survival is tracked.
	Catalysts string
	X, Y      int

	Density  float64
	SoupSize int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Density: 0.5, SoupSize: 16}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.RLE = cfg["rle"]
	c.Catalysts = cfg["catalysts"]
	if v, ok := cfg["x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.X = parsed
		}
	}
	if v, ok := cfg["y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Y = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["soup"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.SoupSize = parsed
		}
	}
	return c
}

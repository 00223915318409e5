package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	// Speed is the number of generations per second.
	Speed int

	// Pattern and Catalysts are pattern files; catalyst cells are tracked
	// and coloured separately.
	Pattern   string
	Catalysts string
	X, Y      int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 8, TPS: 60, Seed: 42, Speed: 10, X: 16, Y: 16}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Speed, "speed", c.Speed, "generations per second")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern file in RLE format")
	fs.StringVar(&c.Catalysts, "catalysts", c.Catalysts, "catalyst pattern file to track")
	fs.IntVar(&c.X, "x", c.X, "pattern offset x")
	fs.IntVar(&c.Y, "y", c.Y, "pattern offset y")
}

// SimConfig reads the pattern files into the key/value form sim factories
// take.
func (c *Config) SimConfig() (map[string]string, error) {
	cfg := map[string]string{
		"x": strconv.Itoa(c.X),
		"y": strconv.Itoa(c.Y),
	}
	for key, path := range map[string]string{"rle": c.Pattern, "catalysts": c.Catalysts} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		cfg[key] = string(data)
	}
	return cfg, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mad-cat/internal/config"
	"mad-cat/internal/logging"
	"mad-cat/internal/search"
)

var checkCmd = &cobra.Command{
	Use:   "check <config>",
	Short: "Validate a configuration and summarize the activation table",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	s, err := search.New(commandContext(cmd), cfg, logging.Sugar(logger))
	if err != nil {
		return err
	}

	t := s.Table()
	valid, first := 0, -1
	for r := 0; r < t.Len(); r++ {
		e := t.At(r)
		if !e.Valid() {
			continue
		}
		valid++
		if first < 0 || e.Act < first {
			first = e.Act
		}
	}

	out := cmd.OutOrStdout()
	pat := s.Pattern()
	fmt.Fprintf(out, "pattern: %d cells\n", pat.Pop())
	fmt.Fprintf(out, "orientations: %d\n", len(t.Catalysts))
	fmt.Fprintf(out, "placements: %d valid of %d\n", valid, t.Len())
	if valid > 0 {
		fmt.Fprintf(out, "earliest activation: %d\n", first)
	}
	fmt.Fprintf(out, "slots: %d, max-gen %d, last-gen %d\n", cfg.NumCatalysts, cfg.MaxGen, cfg.EffectiveLastGen())
	return nil
}

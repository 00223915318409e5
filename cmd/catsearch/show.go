package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mad-cat/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "List archived runs, or the categories of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if dbPath == "" {
		return errors.New("show needs --db")
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		runs, err := db.Runs(ctx)
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %s\n", r.ID, r.Started.Format("2006-01-02 15:04:05"), r.Pattern)
		}
		return nil
	}

	cats, err := db.Categories(ctx, args[0])
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return fmt.Errorf("run %s: no categories archived", args[0])
	}
	for _, c := range cats {
		fmt.Fprintf(out, "category %d: %d results, product %s\n", c.Index, len(c.Results), c.KeyRLE)
		for _, r := range c.Results {
			fmt.Fprintf(out, "  #%d %v active %d-%d %s\n", r.Rank, r.Placements, r.FirstActivation, r.StableGen, r.InitRLE)
		}
	}
	return nil
}

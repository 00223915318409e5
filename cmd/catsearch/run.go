package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mad-cat/internal/category"
	"mad-cat/internal/config"
	"mad-cat/internal/core"
	"mad-cat/internal/logging"
	"mad-cat/internal/report"
	"mad-cat/internal/search"
	"mad-cat/internal/store"
)

var (
	overrides        map[string]string
	progressInterval time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <config>",
	Short: "Run a catalyst search",
	Long: `Loads a directive (.in) or YAML (.yaml) configuration, runs the search and
writes the category report. Interrupting the run writes what was found so far.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	runCmd.Flags().StringToStringVar(&overrides, "set", nil, "override settings, e.g. --set max-gen=120,num-catalyst=2")
	runCmd.Flags().DurationVar(&progressInterval, "progress", 10*time.Second, "interval between progress lines")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	cfg.ApplyMap(overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}

	run := store.Run{ID: uuid.NewString(), Started: time.Now(), Pattern: cfg.Pattern.RLE}
	if data, err := cfg.ToYAML(); err == nil {
		run.Config = string(data)
	}
	log := logger.With(zap.String("run_id", run.ID))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := search.New(ctx, cfg, logging.Sugar(log))
	if err != nil {
		return err
	}
	log.Info("starting search",
		zap.Int("entries", s.Table().Len()),
		zap.Int("slots", cfg.NumCatalysts),
		zap.Int("max_gen", cfg.MaxGen))

	cats := category.New(cfg.MaxGen, cfg.CatDelta, cfg.MaxCategorySize)
	ticker := core.NewFixedInterval(progressInterval)
	hooks := search.Hooks{
		Result: func(r *search.Result) {
			if _, created := cats.Add(r); created {
				log.Info("new category",
					zap.Int("category", cats.Len()),
					zap.Any("placements", r.Placements),
					zap.Int("stable_gen", r.StableGen))
			}
		},
		Progress: func(st search.Stats) {
			if ticker.ShouldStep() {
				log.Info("progress",
					zap.Int("tried", st.Tried),
					zap.Int("results", st.Success),
					zap.Int("categories", cats.Len()))
			}
		},
	}

	runErr := s.Run(ctx, hooks)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		log.Warn("search interrupted, writing partial results")
	}

	st := s.Stats()
	log.Info("search finished",
		zap.Int("tried", st.Tried),
		zap.Int("results", st.Success),
		zap.Int("idle", st.Idle),
		zap.Int("timeout", st.Timeout),
		zap.Int("filtered", st.Filtered),
		zap.Int("forbidden", st.Forbidden),
		zap.Int("categories", cats.Len()))

	cats.Finalize()
	header := []string{
		fmt.Sprintf("run %s", run.ID),
		fmt.Sprintf("%d results in %d categories", st.Success, cats.Len()),
	}
	if err := report.WriteFile(cfg.Output, cats, report.Options{Header: header}); err != nil {
		return err
	}
	log.Info("wrote report", zap.String("path", cfg.Output))
	if cfg.FullReport != "" {
		if err := report.WriteFile(cfg.FullReport, cats, report.Options{Full: true, Header: header}); err != nil {
			return err
		}
		log.Info("wrote full report", zap.String("path", cfg.FullReport))
	}

	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		// The archive outlives an interrupted search.
		if err := db.Save(context.WithoutCancel(ctx), run, cats); err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
		log.Info("archived run", zap.String("db", dbPath))
	}
	return nil
}

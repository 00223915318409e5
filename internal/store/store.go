// Package store archives search runs, their categories and results in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mad-cat/internal/category"
	"mad-cat/internal/search"
)

// Store is an open archive.
type Store struct {
	db *sql.DB
}

// Run describes one archived search.
type Run struct {
	ID      string
	Started time.Time // second precision
	// Config is the YAML form of the configuration.
	Config  string
	Pattern string
}

// CategoryRecord is an archived category with its ranked results.
type CategoryRecord struct {
	Index   int
	KeyRLE  string
	Results []ResultRecord
}

// ResultRecord is one archived result.
type ResultRecord struct {
	Rank            int
	Placements      []search.Placement
	InitRLE         string
	ProductRLE      string
	FirstActivation int
	StableGen       int
	RemoveGen       int
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		config TEXT NOT NULL,
		pattern TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		run_id TEXT NOT NULL REFERENCES runs(id),
		idx INTEGER NOT NULL,
		key_rle TEXT NOT NULL,
		size INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx)
	);
	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL,
		category_idx INTEGER NOT NULL,
		pos INTEGER NOT NULL,
		placements TEXT NOT NULL,
		init_rle TEXT NOT NULL,
		product_rle TEXT NOT NULL,
		first_activation INTEGER NOT NULL,
		stable_gen INTEGER NOT NULL,
		remove_gen INTEGER NOT NULL,
		PRIMARY KEY (run_id, category_idx, pos)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives a run and every result of its categories in one
// transaction.
func (s *Store) Save(ctx context.Context, run Run, cs *category.Categories) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, config, pattern) VALUES (?, ?, ?, ?)`,
		run.ID, run.Started.Unix(), run.Config, run.Pattern); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for idx, c := range cs.List() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (run_id, idx, key_rle, size) VALUES (?, ?, ?, ?)`,
			run.ID, idx, c.Key.RLE(), c.Size()); err != nil {
			return fmt.Errorf("insert category %d: %w", idx, err)
		}
		for rank, r := range c.Results {
			placements, err := json.Marshal(r.Placements)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO results (run_id, category_idx, pos, placements, init_rle, product_rle,
					first_activation, stable_gen, remove_gen) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID, idx, rank, string(placements), r.Init.RLE(), r.Product.RLE(),
				r.FirstActivation, r.StableGen, r.RemoveGen); err != nil {
				return fmt.Errorf("insert result %d/%d: %w", idx, rank, err)
			}
		}
	}
	return tx.Commit()
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, config, pattern FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started int64
		if err := rows.Scan(&r.ID, &started, &r.Config, &r.Pattern); err != nil {
			return nil, err
		}
		r.Started = time.Unix(started, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Categories loads the categories of a run in creation order.
func (s *Store) Categories(ctx context.Context, runID string) ([]CategoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, key_rle FROM categories WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	var out []CategoryRecord
	for rows.Next() {
		var c CategoryRecord
		if err := rows.Scan(&c.Index, &c.KeyRLE); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		res, err := s.results(ctx, runID, out[i].Index)
		if err != nil {
			return nil, err
		}
		out[i].Results = res
	}
	return out, nil
}

func (s *Store) results(ctx context.Context, runID string, idx int) ([]ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pos, placements, init_rle, product_rle, first_activation, stable_gen, remove_gen
		FROM results WHERE run_id = ? AND category_idx = ? ORDER BY pos`, runID, idx)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var placements string
		if err := rows.Scan(&r.Rank, &placements, &r.InitRLE, &r.ProductRLE,
			&r.FirstActivation, &r.StableGen, &r.RemoveGen); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(placements), &r.Placements); err != nil {
			return nil, fmt.Errorf("decode placements: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

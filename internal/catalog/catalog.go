package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run records one completed metabolics analysis: its inputs, where the
// results landed, and the summary metrics.
type Run struct {
	ID         string             `json:"id"`
	ModelFile  string             `json:"model_file"`
	StatesFile string             `json:"states_file"`
	ProbeKind  string             `json:"probe_kind"`
	ResultsDir string             `json:"results_dir"`
	Timestamp  time.Time          `json:"timestamp"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewRunID derives a run identifier from the model file name and the
// current time.
func NewRunID(modelFile string) string {
	base := strings.TrimSuffix(filepath.Base(modelFile), filepath.Ext(modelFile))
	return fmt.Sprintf("%s_%d", base, time.Now().Unix())
}

// Catalog is a SQLite-backed index of analysis runs.
type Catalog struct {
	path string
	db   *sql.DB
}

// Open opens (or creates) the catalog database at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("catalog: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model_file TEXT NOT NULL,
			states_file TEXT NOT NULL,
			probe_kind TEXT NOT NULL,
			results_dir TEXT NOT NULL,
			created_at TEXT NOT NULL,
			metrics TEXT NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Catalog{path: path, db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// SaveRun inserts or replaces a run record.
func (c *Catalog) SaveRun(ctx context.Context, run Run) error {
	metrics, err := json.Marshal(run.Metrics)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO runs (id, model_file, states_file, probe_kind, results_dir, created_at, metrics)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			model_file = excluded.model_file,
			states_file = excluded.states_file,
			probe_kind = excluded.probe_kind,
			results_dir = excluded.results_dir,
			created_at = excluded.created_at,
			metrics = excluded.metrics
	`, run.ID, run.ModelFile, run.StatesFile, run.ProbeKind, run.ResultsDir,
		run.Timestamp.UTC().Format(time.RFC3339Nano), metrics)
	return err
}

// GetRun fetches a run by id; the second return is false when absent.
func (c *Catalog) GetRun(ctx context.Context, id string) (Run, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, model_file, states_file, probe_kind, results_dir, created_at, metrics
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns all recorded runs, newest first.
func (c *Catalog) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, model_file, states_file, probe_kind, results_dir, created_at, metrics
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var createdAt string
	var metrics []byte

	if err := s.Scan(&run.ID, &run.ModelFile, &run.StatesFile, &run.ProbeKind,
		&run.ResultsDir, &createdAt, &metrics); err != nil {
		return Run{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("catalog: bad timestamp for run %s: %w", run.ID, err)
	}
	run.Timestamp = ts

	if err := json.Unmarshal(metrics, &run.Metrics); err != nil {
		return Run{}, fmt.Errorf("catalog: bad metrics for run %s: %w", run.ID, err)
	}
	return run, nil
}

// Package storage persists analysis snapshots to a per-project SQLite
// database so the read commands can answer from the latest run without
// re-analyzing.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"grouper/internal/analysis"
	"grouper/internal/errors"
	"grouper/internal/logging"
	"grouper/internal/output"
)

// Store wraps the snapshot database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the snapshot database at the given path under root.
func Open(root, path string, logger *logging.Logger) (*Store, error) {
	dbPath := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to create storage directory", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to open snapshot database", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.New(errors.StorageFailure, "failed to set pragma", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, errors.New(errors.StorageFailure, "failed to initialize schema", err)
	}

	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			created_at TEXT NOT NULL,
			total_files INTEGER NOT NULL,
			total_groups INTEGER NOT NULL,
			warning_count INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS groups (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			strategy TEXT NOT NULL,
			importance_total REAL NOT NULL,
			PRIMARY KEY (run_id, name)
		);

		CREATE TABLE IF NOT EXISTS mappings (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file TEXT NOT NULL,
			group_name TEXT NOT NULL,
			reason TEXT NOT NULL,
			confidence REAL NOT NULL,
			digest TEXT,
			position INTEGER NOT NULL,
			PRIMARY KEY (run_id, file)
		);
		CREATE INDEX IF NOT EXISTS idx_mappings_group ON mappings(run_id, group_name, position);

		CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			PRIMARY KEY (run_id, source, target)
		);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun persists one analysis result in a single transaction.
func (s *Store) SaveRun(result *analysis.Result) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return errors.New(errors.StorageFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs (id, root, created_at, total_files, total_groups, warning_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Root, time.Now().UTC().Format(time.RFC3339),
		result.Stats.TotalFiles, result.Stats.TotalGroups, len(result.Warnings),
	)
	if err != nil {
		return errors.New(errors.StorageFailure, "failed to insert run", err)
	}

	for _, g := range result.Manifest {
		_, err = tx.Exec(
			`INSERT INTO groups (run_id, name, strategy, importance_total) VALUES (?, ?, ?, ?)`,
			result.RunID, g.Name, g.Strategy, g.ImportanceTotal,
		)
		if err != nil {
			return errors.New(errors.StorageFailure, "failed to insert group", err)
		}

		for pos, file := range g.Files {
			mp, ok := result.Mapping.Group(file)
			if !ok {
				continue
			}
			_, err = tx.Exec(
				`INSERT INTO mappings (run_id, file, group_name, reason, confidence, digest, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				result.RunID, file, g.Name, mp.Reason, mp.Confidence, result.Digests[file], pos,
			)
			if err != nil {
				return errors.New(errors.StorageFailure, "failed to insert mapping", err)
			}
		}
	}

	for _, e := range result.Summary.Edges {
		_, err = tx.Exec(
			`INSERT INTO edges (run_id, source, target) VALUES (?, ?, ?)`,
			result.RunID, e.Source, e.Target,
		)
		if err != nil {
			return errors.New(errors.StorageFailure, "failed to insert edge", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New(errors.StorageFailure, "failed to commit run", err)
	}

	s.logger.Debug("Persisted analysis run", map[string]interface{}{
		"runId": result.RunID,
		"path":  s.dbPath,
	})
	return nil
}

// RunInfo is one persisted run's header row.
type RunInfo struct {
	ID           string `json:"id"`
	Root         string `json:"root"`
	CreatedAt    string `json:"createdAt"`
	TotalFiles   int    `json:"totalFiles"`
	TotalGroups  int    `json:"totalGroups"`
	WarningCount int    `json:"warningCount"`
}

// LatestRun returns the most recent persisted run, or nil when none exists.
func (s *Store) LatestRun() (*RunInfo, error) {
	row := s.conn.QueryRow(
		`SELECT id, root, created_at, total_files, total_groups, warning_count
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	)

	var info RunInfo
	err := row.Scan(&info.ID, &info.Root, &info.CreatedAt,
		&info.TotalFiles, &info.TotalGroups, &info.WarningCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to query latest run", err)
	}
	return &info, nil
}

// Groups returns the persisted groups of a run, largest importance first.
func (s *Store) Groups(runID string) ([]output.GroupView, error) {
	rows, err := s.conn.Query(
		`SELECT name, strategy, importance_total FROM groups
		 WHERE run_id = ? ORDER BY importance_total DESC, name ASC`, runID,
	)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to query groups", err)
	}
	defer rows.Close()

	var groups []output.GroupView
	for rows.Next() {
		var g output.GroupView
		if err := rows.Scan(&g.Name, &g.Strategy, &g.ImportanceTotal); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan group", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to read groups", err)
	}

	for i := range groups {
		files, err := s.GroupFiles(runID, groups[i].Name)
		if err != nil {
			return nil, err
		}
		groups[i].Files = files
	}
	return groups, nil
}

// GroupFiles returns one group's files in partition order.
func (s *Store) GroupFiles(runID, name string) ([]string, error) {
	rows, err := s.conn.Query(
		`SELECT file FROM mappings WHERE run_id = ? AND group_name = ? ORDER BY position ASC`,
		runID, name,
	)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to query group files", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan file", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Mappings returns the persisted file-to-group table, sorted by file.
func (s *Store) Mappings(runID string) ([]output.MappingView, error) {
	rows, err := s.conn.Query(
		`SELECT file, group_name, reason, confidence FROM mappings
		 WHERE run_id = ? ORDER BY file ASC`, runID,
	)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to query mappings", err)
	}
	defer rows.Close()

	var mappings []output.MappingView
	for rows.Next() {
		var m output.MappingView
		if err := rows.Scan(&m.File, &m.Group, &m.Reason, &m.Confidence); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan mapping", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// Edges returns the persisted dependency edges sorted by (source, target).
func (s *Store) Edges(runID string) ([]output.EdgeView, error) {
	rows, err := s.conn.Query(
		`SELECT source, target FROM edges WHERE run_id = ? ORDER BY source ASC, target ASC`,
		runID,
	)
	if err != nil {
		return nil, errors.New(errors.StorageFailure, "failed to query edges", err)
	}
	defer rows.Close()

	var edges []output.EdgeView
	for rows.Next() {
		var e output.EdgeView
		if err := rows.Scan(&e.Source, &e.Target); err != nil {
			return nil, errors.New(errors.StorageFailure, "failed to scan edge", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

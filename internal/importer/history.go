// internal/importer/history.go
package importer

import (
	"database/sql"
	"fmt"
	"time"
)

// ImportRun is the persisted record of one reconciliation run.
type ImportRun struct {
	ID                int64
	RunID             string // uuid, stable across API responses
	Source            string // e.g. "steam"
	StartedAt         time.Time
	FinishedAt        time.Time
	TotalProcessed    int
	TotalMatched      int
	TotalSkippedOwned int
	TotalNoMatch      int
	TotalImported     int // rows actually written, after write-time dedup
}

// HistoryStore persists import run records.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a history store.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Add inserts a new import run record.
func (s *HistoryStore) Add(r *ImportRun) error {
	result, err := s.db.Exec(`
		INSERT INTO import_runs (run_id, source, started_at, finished_at,
			total_processed, total_matched, total_skipped_owned, total_no_match, total_imported)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.StartedAt, r.FinishedAt,
		r.TotalProcessed, r.TotalMatched, r.TotalSkippedOwned, r.TotalNoMatch, r.TotalImported,
	)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	return nil
}

// List returns import runs, most recent first.
func (s *HistoryStore) List(limit int) ([]*ImportRun, error) {
	query := `SELECT id, run_id, source, started_at, finished_at,
		total_processed, total_matched, total_skipped_owned, total_no_match, total_imported
		FROM import_runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*ImportRun
	for rows.Next() {
		r := &ImportRun{}
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.StartedAt, &r.FinishedAt,
			&r.TotalProcessed, &r.TotalMatched, &r.TotalSkippedOwned, &r.TotalNoMatch, &r.TotalImported); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import runs: %w", err)
	}

	return results, nil
}

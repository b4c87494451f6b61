package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

// BeginRun records a new run
func (s *Store) BeginRun(ctx context.Context, run ports.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, folder, files, status, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Folder, run.Files, run.Status, run.StartedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// EndRun stamps the end of a run with its final status
func (s *Store) EndRun(ctx context.Context, runID, status string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, ended_at = ? WHERE id = ?
	`, status, time.Now().UnixNano(), runID)
	if err != nil {
		return fmt.Errorf("failed to end run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown run %s", runID)
	}
	return nil
}

// ListRuns returns every stored run, oldest first
func (s *Store) ListRuns(ctx context.Context) ([]ports.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, folder, files, status, started_at, ended_at
		FROM runs ORDER BY started_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ports.RunRecord
	for rows.Next() {
		var (
			r       ports.RunRecord
			started int64
			ended   sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Folder, &r.Files, &r.Status, &started, &ended); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, started)
		if ended.Valid {
			t := time.Unix(0, ended.Int64)
			r.EndedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// AddSkipped appends a skipped entry to a run
func (s *Store) AddSkipped(ctx context.Context, runID string, e domain.SkippedEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skipped (run_id, identifier, reason, detail, at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, e.Identifier, e.Reason, e.Detail, e.At.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record skipped %s: %w", e.Identifier, err)
	}
	return nil
}

// ListSkipped returns every stored skipped entry in recording order
func (s *Store) ListSkipped(ctx context.Context) ([]domain.SkippedEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, reason, detail, at FROM skipped ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SkippedEntry
	for rows.Next() {
		var (
			e  domain.SkippedEntry
			at int64
		)
		if err := rows.Scan(&e.Identifier, &e.Reason, &e.Detail, &at); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearSkipped removes every skipped entry
func (s *Store) ClearSkipped(ctx context.Context) error {
	return s.clear(ctx, "skipped")
}

// AddSummary appends a summary entry to a run
func (s *Store) AddSummary(ctx context.Context, runID string, e domain.SummaryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summary (run_id, file, layout, revision, revision_description, drawing_number, drawing_title)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, e.File, e.Layout, e.Revision, e.RevisionDescription, e.DrawingNumber, e.DrawingTitle)
	if err != nil {
		return fmt.Errorf("failed to record summary for %s: %w", e.File, err)
	}
	return nil
}

// ListSummary returns every stored summary entry in recording order
func (s *Store) ListSummary(ctx context.Context) ([]domain.SummaryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, layout, revision, revision_description, drawing_number, drawing_title
		FROM summary ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SummaryEntry
	for rows.Next() {
		var e domain.SummaryEntry
		if err := rows.Scan(&e.File, &e.Layout, &e.Revision, &e.RevisionDescription, &e.DrawingNumber, &e.DrawingTitle); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearSummary removes every summary entry
func (s *Store) ClearSummary(ctx context.Context) error {
	return s.clear(ctx, "summary")
}

// clear empties table and drops the finished runs left without entries
func (s *Store) clear(ctx context.Context, table string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		_, err := tx.ExecContext(ctx, `
			DELETE FROM runs
			WHERE ended_at IS NOT NULL
			  AND id NOT IN (SELECT run_id FROM skipped)
			  AND id NOT IN (SELECT run_id FROM summary)
		`)
		if err != nil {
			return fmt.Errorf("failed to prune runs: %w", err)
		}
		return nil
	})
}

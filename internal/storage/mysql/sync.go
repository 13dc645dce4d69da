package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"crm-golang/internal/storage"
)

func (s *Storage) SaveSyncRun(ctx context.Context, run storage.SyncRun) error {
	const op = "storage.mysql.SaveSyncRun"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_sync_runs
			(id, module, direction, status, requested, synced, failed,
			 started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			status = VALUES(status), synced = VALUES(synced),
			failed = VALUES(failed), completed_at = VALUES(completed_at)`,
		run.ID, run.Module, run.Direction, run.Status, run.Requested,
		run.Synced, run.Failed, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSyncRuns returns recent runs, newest first. The module filter is
// optional.
func (s *Storage) GetSyncRuns(ctx context.Context, module string, limit int) ([]*storage.SyncRun, error) {
	const op = "storage.mysql.GetSyncRuns"

	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, module, direction, status, requested, synced, failed,
		       started_at, completed_at
		FROM crm_sync_runs`
	var args []interface{}
	if module != "" {
		query += " WHERE module = ?"
		args = append(args, module)
	}
	query += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectSyncRuns(rows, op)
}

func collectSyncRuns(rows *sql.Rows, op string) ([]*storage.SyncRun, error) {
	var runs []*storage.SyncRun
	for rows.Next() {
		var run storage.SyncRun
		err := rows.Scan(&run.ID, &run.Module, &run.Direction, &run.Status,
			&run.Requested, &run.Synced, &run.Failed, &run.StartedAt, &run.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

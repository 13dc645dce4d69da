package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"crm-golang/internal/storage"
)

func (s *Storage) GetPipelines(ctx context.Context) ([]*storage.Pipeline, error) {
	const op = "storage.mysql.GetPipelines"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, is_default, stages FROM crm_pipelines ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var pipelines []*storage.Pipeline
	for rows.Next() {
		var p storage.Pipeline
		var stagesJSON string
		if err := rows.Scan(&p.ID, &p.Name, &p.IsDefault, &stagesJSON); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal([]byte(stagesJSON), &p.Stages); err != nil {
			return nil, fmt.Errorf("%s: decode stages: %w", op, err)
		}
		pipelines = append(pipelines, &p)
	}
	return pipelines, rows.Err()
}

func (s *Storage) GetPipeline(ctx context.Context, id string) (*storage.Pipeline, error) {
	const op = "storage.mysql.GetPipeline"

	var p storage.Pipeline
	var stagesJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, is_default, stages FROM crm_pipelines WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.IsDefault, &stagesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(stagesJSON), &p.Stages); err != nil {
		return nil, fmt.Errorf("%s: decode stages: %w", op, err)
	}
	return &p, nil
}

func (s *Storage) UpdatePipeline(ctx context.Context, p storage.Pipeline) error {
	const op = "storage.mysql.UpdatePipeline"

	stagesJSON, err := json.Marshal(p.Stages)
	if err != nil {
		return fmt.Errorf("%s: encode stages: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE crm_pipelines SET name = ?, is_default = ?, stages = ? WHERE id = ?`,
		p.Name, p.IsDefault, string(stagesJSON), p.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Dashboard aggregates, fanned out concurrently by the summary service.

func (s *Storage) CountLeads(ctx context.Context) (int, error) {
	return s.countRows(ctx, "crm_leads")
}

func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	return s.countRows(ctx, "crm_accounts")
}

func (s *Storage) CountContacts(ctx context.Context) (int, error) {
	return s.countRows(ctx, "crm_contacts")
}

func (s *Storage) countRows(ctx context.Context, table string) (int, error) {
	const op = "storage.mysql.countRows"

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %s: %w", op, table, err)
	}
	return n, nil
}

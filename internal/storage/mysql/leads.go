package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crm-golang/internal/storage"
)

func (s *Storage) GetLeads(ctx context.Context, status, search string) ([]*storage.Lead, error) {
	const op = "storage.mysql.GetLeads"

	query := `
		SELECT id, first_name, last_name, email, phone, company, position,
		       industry, source, status, score, owner_id, created_at, updated_at
		FROM crm_leads`
	var args []interface{}
	var where []string

	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if search != "" {
		where = append(where, "(first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR company LIKE ?)")
		like := "%" + search + "%"
		args = append(args, like, like, like, like)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var leads []*storage.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (s *Storage) GetLead(ctx context.Context, id string) (*storage.Lead, error) {
	const op = "storage.mysql.GetLead"

	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone, company, position,
		       industry, source, status, score, owner_id, created_at, updated_at
		FROM crm_leads WHERE id = ?`, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lead, nil
}

func (s *Storage) SaveLead(ctx context.Context, lead storage.Lead) (*storage.Lead, error) {
	const op = "storage.mysql.SaveLead"

	lead.ID = uuid.NewString()
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Status == "" {
		lead.Status = storage.LeadStatusNew
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_leads
			(id, first_name, last_name, email, phone, company, position,
			 industry, source, status, score, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Company, lead.Position, lead.Industry, lead.Source, lead.Status,
		lead.Score, lead.OwnerID, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &lead, nil
}

// UpdateLead applies a partial patch; only known columns are touched.
func (s *Storage) UpdateLead(ctx context.Context, id string, patch map[string]any) (*storage.Lead, error) {
	const op = "storage.mysql.UpdateLead"

	allowed := map[string]bool{
		"first_name": true, "last_name": true, "email": true, "phone": true,
		"company": true, "position": true, "industry": true, "source": true,
		"status": true, "score": true, "owner_id": true,
	}

	query := "UPDATE crm_leads SET updated_at = ?"
	args := []interface{}{time.Now().UTC()}
	for col, val := range patch {
		if !allowed[col] {
			continue
		}
		query += ", " + col + " = ?"
		args = append(args, val)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetLead(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.GetLead(ctx, id)
}

func (s *Storage) DeleteLead(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteLead"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) GetLeadFiles(ctx context.Context, leadID string) ([]*storage.LeadFile, error) {
	const op = "storage.mysql.GetLeadFiles"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lead_id, file_name, file_size, uploaded_by, uploaded_at
		FROM crm_lead_files WHERE lead_id = ? ORDER BY uploaded_at DESC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var files []*storage.LeadFile
	for rows.Next() {
		var f storage.LeadFile
		if err := rows.Scan(&f.ID, &f.LeadID, &f.FileName, &f.FileSize, &f.UploadedBy, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*storage.Lead, error) {
	var lead storage.Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.Company, &lead.Position, &lead.Industry, &lead.Source,
		&lead.Status, &lead.Score, &lead.OwnerID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

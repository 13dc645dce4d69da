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

const activityColumns = `id, type, subject, description, status, due_date,
	related_to, related_type, assigned_to, created_at, updated_at`

func (s *Storage) GetActivities(ctx context.Context) ([]*storage.Activity, error) {
	const op = "storage.mysql.GetActivities"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM crm_activities ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectActivities(rows, op)
}

func (s *Storage) GetActivity(ctx context.Context, id string) (*storage.Activity, error) {
	const op = "storage.mysql.GetActivity"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM crm_activities WHERE id = ?`, id)

	activity, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return activity, nil
}

// GetActivitiesFor returns activities related to one CRM entity
// (lead or account detail pages).
func (s *Storage) GetActivitiesFor(ctx context.Context, relatedType, relatedID string) ([]*storage.Activity, error) {
	const op = "storage.mysql.GetActivitiesFor"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM crm_activities
		 WHERE related_type = ? AND related_to = ? ORDER BY created_at DESC`,
		relatedType, relatedID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectActivities(rows, op)
}

func (s *Storage) SaveActivity(ctx context.Context, activity storage.Activity) (*storage.Activity, error) {
	const op = "storage.mysql.SaveActivity"

	activity.ID = uuid.NewString()
	now := time.Now().UTC()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	if activity.Status == "" {
		activity.Status = storage.ActivityStatusPlanned
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_activities
			(id, type, subject, description, status, due_date, related_to,
			 related_type, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Type, activity.Subject, activity.Description,
		activity.Status, activity.DueDate, activity.RelatedTo,
		activity.RelatedType, activity.AssignedTo, activity.CreatedAt, activity.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &activity, nil
}

func (s *Storage) UpdateActivity(ctx context.Context, id string, patch map[string]any) (*storage.Activity, error) {
	const op = "storage.mysql.UpdateActivity"

	allowed := map[string]bool{
		"type": true, "subject": true, "description": true, "status": true,
		"due_date": true, "related_to": true, "related_type": true,
		"assigned_to": true,
	}

	query := "UPDATE crm_activities SET updated_at = ?"
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

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetActivity(ctx, id)
}

func (s *Storage) DeleteActivity(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteActivity"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectActivities(rows *sql.Rows, op string) ([]*storage.Activity, error) {
	var activities []*storage.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func scanActivity(row rowScanner) (*storage.Activity, error) {
	var activity storage.Activity
	err := row.Scan(
		&activity.ID, &activity.Type, &activity.Subject, &activity.Description,
		&activity.Status, &activity.DueDate, &activity.RelatedTo,
		&activity.RelatedType, &activity.AssignedTo, &activity.CreatedAt, &activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

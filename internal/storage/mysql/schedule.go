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

// Tasks and meetings share the schedule surface of the CRM; they are
// simpler than activities and only need plain CRUD.

func (s *Storage) GetTasks(ctx context.Context) ([]*storage.Task, error) {
	const op = "storage.mysql.GetTasks"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, priority, status, due_date,
		       assigned_to, related_to, created_at, updated_at
		FROM crm_tasks ORDER BY due_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []*storage.Task
	for rows.Next() {
		var t storage.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority,
			&t.Status, &t.DueDate, &t.AssignedTo, &t.RelatedTo,
			&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func (s *Storage) SaveTask(ctx context.Context, task storage.Task) (*storage.Task, error) {
	const op = "storage.mysql.SaveTask"

	task.ID = uuid.NewString()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_tasks
			(id, title, description, priority, status, due_date, assigned_to,
			 related_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Priority, task.Status,
		task.DueDate, task.AssignedTo, task.RelatedTo, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &task, nil
}

func (s *Storage) UpdateTask(ctx context.Context, id string, patch map[string]any) (*storage.Task, error) {
	const op = "storage.mysql.UpdateTask"

	allowed := map[string]bool{
		"title": true, "description": true, "priority": true, "status": true,
		"due_date": true, "assigned_to": true, "related_to": true,
	}

	query := "UPDATE crm_tasks SET updated_at = ?"
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

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, priority, status, due_date,
		       assigned_to, related_to, created_at, updated_at
		FROM crm_tasks WHERE id = ?`, id)

	var t storage.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.DueDate, &t.AssignedTo, &t.RelatedTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteTask"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) GetMeetings(ctx context.Context) ([]*storage.Meeting, error) {
	const op = "storage.mysql.GetMeetings"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, starts_at, ends_at, location,
		       organizer_id, related_to, created_at, updated_at
		FROM crm_meetings ORDER BY starts_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var meetings []*storage.Meeting
	for rows.Next() {
		var m storage.Meeting
		err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.StartsAt,
			&m.EndsAt, &m.Location, &m.OrganizerID, &m.RelatedTo,
			&m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		meetings = append(meetings, &m)
	}
	return meetings, rows.Err()
}

func (s *Storage) SaveMeeting(ctx context.Context, meeting storage.Meeting) (*storage.Meeting, error) {
	const op = "storage.mysql.SaveMeeting"

	meeting.ID = uuid.NewString()
	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_meetings
			(id, title, description, starts_at, ends_at, location,
			 organizer_id, related_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meeting.ID, meeting.Title, meeting.Description, meeting.StartsAt,
		meeting.EndsAt, meeting.Location, meeting.OrganizerID,
		meeting.RelatedTo, meeting.CreatedAt, meeting.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &meeting, nil
}

func (s *Storage) DeleteMeeting(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteMeeting"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

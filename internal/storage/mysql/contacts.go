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

const contactColumns = `id, first_name, last_name, email, phone, position,
	department, account_id, owner_id, created_at, updated_at`

func (s *Storage) GetContacts(ctx context.Context) ([]*storage.Contact, error) {
	const op = "storage.mysql.GetContacts"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM crm_contacts ORDER BY last_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectContacts(rows, op)
}

func (s *Storage) GetContact(ctx context.Context, id string) (*storage.Contact, error) {
	const op = "storage.mysql.GetContact"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM crm_contacts WHERE id = ?`, id)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

func (s *Storage) GetContactsByAccount(ctx context.Context, accountID string) ([]*storage.Contact, error) {
	const op = "storage.mysql.GetContactsByAccount"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM crm_contacts WHERE account_id = ? ORDER BY last_name ASC`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectContacts(rows, op)
}

// GetContactsByLead follows the lead's converted account when present.
func (s *Storage) GetContactsByLead(ctx context.Context, leadID string) ([]*storage.Contact, error) {
	const op = "storage.mysql.GetContactsByLead"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+contactColumns+`
		FROM crm_contacts
		WHERE account_id IN (SELECT account_id FROM crm_lead_accounts WHERE lead_id = ?)
		ORDER BY last_name ASC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectContacts(rows, op)
}

func (s *Storage) SaveContact(ctx context.Context, contact storage.Contact) (*storage.Contact, error) {
	const op = "storage.mysql.SaveContact"

	contact.ID = uuid.NewString()
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_contacts
			(id, first_name, last_name, email, phone, position, department,
			 account_id, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Position, contact.Department, contact.AccountID,
		contact.OwnerID, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &contact, nil
}

func (s *Storage) UpdateContact(ctx context.Context, id string, patch map[string]any) (*storage.Contact, error) {
	const op = "storage.mysql.UpdateContact"

	allowed := map[string]bool{
		"first_name": true, "last_name": true, "email": true, "phone": true,
		"position": true, "department": true, "account_id": true, "owner_id": true,
	}

	query := "UPDATE crm_contacts SET updated_at = ?"
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
	return s.GetContact(ctx, id)
}

func (s *Storage) DeleteContact(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteContact"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectContacts(rows *sql.Rows, op string) ([]*storage.Contact, error) {
	var contacts []*storage.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func scanContact(row rowScanner) (*storage.Contact, error) {
	var contact storage.Contact
	err := row.Scan(
		&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
		&contact.Phone, &contact.Position, &contact.Department,
		&contact.AccountID, &contact.OwnerID, &contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

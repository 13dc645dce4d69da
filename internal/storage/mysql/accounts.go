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

func (s *Storage) GetAccounts(ctx context.Context) ([]*storage.Account, error) {
	const op = "storage.mysql.GetAccounts"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, domain, industry, size, revenue, website, phone,
		       country, owner_id, created_at, updated_at
		FROM crm_accounts ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var accounts []*storage.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *Storage) GetAccount(ctx context.Context, id string) (*storage.Account, error) {
	const op = "storage.mysql.GetAccount"

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, domain, industry, size, revenue, website, phone,
		       country, owner_id, created_at, updated_at
		FROM crm_accounts WHERE id = ?`, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

func (s *Storage) SaveAccount(ctx context.Context, account storage.Account) (*storage.Account, error) {
	const op = "storage.mysql.SaveAccount"

	account.ID = uuid.NewString()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crm_accounts
			(id, name, domain, industry, size, revenue, website, phone,
			 country, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Domain, account.Industry,
		account.Size, account.Revenue, account.Website, account.Phone,
		account.Country, account.OwnerID, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &account, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, id string, patch map[string]any) (*storage.Account, error) {
	const op = "storage.mysql.UpdateAccount"

	allowed := map[string]bool{
		"name": true, "domain": true, "industry": true, "size": true,
		"revenue": true, "website": true, "phone": true, "country": true,
		"owner_id": true,
	}

	query := "UPDATE crm_accounts SET updated_at = ?"
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
	return s.GetAccount(ctx, id)
}

func (s *Storage) DeleteAccount(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteAccount"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanAccount(row rowScanner) (*storage.Account, error) {
	var account storage.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Domain, &account.Industry,
		&account.Size, &account.Revenue, &account.Website, &account.Phone,
		&account.Country, &account.OwnerID, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

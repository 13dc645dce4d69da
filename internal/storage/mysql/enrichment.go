package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"crm-golang/internal/storage"
)

// One enrichment row per account. The snapshot itself lives in a JSON
// column so new provider fields never need a migration.

func (s *Storage) GetAccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	const op = "storage.mysql.GetAccountEnrichment"

	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM crm_account_enrichments WHERE account_id = ?`,
		accountID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var enrichment storage.AccountEnrichment
	if err := json.Unmarshal(data, &enrichment); err != nil {
		return nil, fmt.Errorf("%s: decode snapshot: %w", op, err)
	}
	enrichment.AccountID = accountID
	return &enrichment, nil
}

func (s *Storage) SaveAccountEnrichment(ctx context.Context, enrichment storage.AccountEnrichment) error {
	const op = "storage.mysql.SaveAccountEnrichment"

	data, err := json.Marshal(enrichment)
	if err != nil {
		return fmt.Errorf("%s: encode snapshot: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crm_account_enrichments (account_id, data, last_enriched)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			data = VALUES(data), last_enriched = VALUES(last_enriched)`,
		enrichment.AccountID, data, enrichment.LastEnriched,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

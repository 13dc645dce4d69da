package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crm-golang/internal/storage"
)

const dealColumns = `id, deal_number, name, owner_id, deal_type, country,
	pipeline_id, account_id, contact_id, amount, currency, closing_date,
	stage_id, probability, platform_fee, custom_fee, license_fee,
	onboarding_fee, products, planned_activities, description, next_steps,
	created_by, created_at, updated_at`

func (s *Storage) GetDeals(ctx context.Context) ([]*storage.Deal, error) {
	const op = "storage.mysql.GetDeals"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dealColumns+` FROM crm_deals ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectDeals(rows, op)
}

func (s *Storage) GetDeal(ctx context.Context, id string) (*storage.Deal, error) {
	const op = "storage.mysql.GetDeal"

	row := s.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM crm_deals WHERE id = ?`, id)

	deal, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return deal, nil
}

func (s *Storage) GetDealsByAccount(ctx context.Context, accountID string) ([]*storage.Deal, error) {
	const op = "storage.mysql.GetDealsByAccount"

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dealColumns+` FROM crm_deals WHERE account_id = ? ORDER BY created_at DESC`,
		accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectDeals(rows, op)
}

func (s *Storage) GetDealsByLead(ctx context.Context, leadID string) ([]*storage.Deal, error) {
	const op = "storage.mysql.GetDealsByLead"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+dealColumns+`
		FROM crm_deals
		WHERE account_id IN (SELECT account_id FROM crm_lead_accounts WHERE lead_id = ?)
		ORDER BY created_at DESC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return collectDeals(rows, op)
}

// SaveDeal materializes a finished wizard record into a deal row. The
// owned collections are stored as JSON columns next to the scalar
// fields, the same way the frontend submitted them.
func (s *Storage) SaveDeal(ctx context.Context, rec storage.DealRecord, createdBy string) (*storage.Deal, error) {
	const op = "storage.mysql.SaveDeal"

	productsJSON, err := json.Marshal(rec.Products)
	if err != nil {
		return nil, fmt.Errorf("%s: encode products: %w", op, err)
	}
	activitiesJSON, err := json.Marshal(rec.PlannedActivities)
	if err != nil {
		return nil, fmt.Errorf("%s: encode planned activities: %w", op, err)
	}

	var number int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(deal_number), 0) + 1 FROM crm_deals`).Scan(&number); err != nil {
		return nil, fmt.Errorf("%s: next deal number: %w", op, err)
	}

	now := time.Now().UTC()
	deal := &storage.Deal{
		ID:                uuid.NewString(),
		DealNumber:        number,
		Name:              rec.Name,
		OwnerID:           rec.OwnerID,
		DealType:          rec.DealType,
		Country:           rec.Country,
		PipelineID:        rec.PipelineID,
		Amount:            rec.Amount,
		Currency:          rec.Currency,
		StageID:           rec.StageID,
		Probability:       rec.Probability,
		PlatformFee:       rec.PlatformFee,
		CustomFee:         rec.CustomFee,
		LicenseFee:        rec.LicenseFee,
		OnboardingFee:     rec.OnboardingFee,
		Products:          rec.Products,
		PlannedActivities: rec.PlannedActivities,
		Description:       rec.Description,
		NextSteps:         rec.NextSteps,
		CreatedBy:         createdBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if rec.AccountID != "" {
		deal.AccountID = &rec.AccountID
	}
	if rec.ContactID != "" {
		deal.ContactID = &rec.ContactID
	}
	if rec.ClosingDate != "" {
		deal.ClosingDate = &rec.ClosingDate
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crm_deals
			(id, deal_number, name, owner_id, deal_type, country, pipeline_id,
			 account_id, contact_id, amount, currency, closing_date, stage_id,
			 probability, platform_fee, custom_fee, license_fee, onboarding_fee,
			 products, planned_activities, description, next_steps, created_by,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.DealNumber, deal.Name, deal.OwnerID, deal.DealType,
		deal.Country, deal.PipelineID, deal.AccountID, deal.ContactID,
		deal.Amount, deal.Currency, deal.ClosingDate, deal.StageID,
		deal.Probability, deal.PlatformFee, deal.CustomFee, deal.LicenseFee,
		deal.OnboardingFee, string(productsJSON), string(activitiesJSON),
		deal.Description, deal.NextSteps, deal.CreatedBy, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return deal, nil
}

func (s *Storage) UpdateDeal(ctx context.Context, id string, patch map[string]any) (*storage.Deal, error) {
	const op = "storage.mysql.UpdateDeal"

	allowed := map[string]bool{
		"name": true, "owner_id": true, "deal_type": true, "country": true,
		"pipeline_id": true, "account_id": true, "contact_id": true,
		"currency": true, "closing_date": true, "stage_id": true,
		"probability": true, "description": true, "next_steps": true,
	}

	query := "UPDATE crm_deals SET updated_at = ?"
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
	return s.GetDeal(ctx, id)
}

func (s *Storage) DeleteDeal(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteDeal"

	res, err := s.db.ExecContext(ctx, `DELETE FROM crm_deals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectDeals(rows *sql.Rows, op string) ([]*storage.Deal, error) {
	var deals []*storage.Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

func scanDeal(row rowScanner) (*storage.Deal, error) {
	var deal storage.Deal
	var productsJSON, activitiesJSON string
	err := row.Scan(
		&deal.ID, &deal.DealNumber, &deal.Name, &deal.OwnerID, &deal.DealType,
		&deal.Country, &deal.PipelineID, &deal.AccountID, &deal.ContactID,
		&deal.Amount, &deal.Currency, &deal.ClosingDate, &deal.StageID,
		&deal.Probability, &deal.PlatformFee, &deal.CustomFee, &deal.LicenseFee,
		&deal.OnboardingFee, &productsJSON, &activitiesJSON, &deal.Description,
		&deal.NextSteps, &deal.CreatedBy, &deal.CreatedAt, &deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(productsJSON), &deal.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if err := json.Unmarshal([]byte(activitiesJSON), &deal.PlannedActivities); err != nil {
		return nil, fmt.Errorf("decode planned activities: %w", err)
	}
	return &deal, nil
}

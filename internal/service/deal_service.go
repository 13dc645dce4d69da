package service

import (
	"context"
	"fmt"
	"sort"

	"crm-golang/internal/middleware/auth"
	"crm-golang/internal/storage"
	"crm-golang/internal/wizard"
)

type DealStorage interface {
	SaveDeal(ctx context.Context, rec storage.DealRecord, createdBy string) (*storage.Deal, error)
}

// DealService turns a finished wizard record into a stored deal. It is
// the server-side implementation of the wizard's submission collaborator.
type DealService struct {
	storage DealStorage
}

func NewDealService(storage DealStorage) *DealService {
	return &DealService{storage: storage}
}

// ValidationError carries field-level messages for a record that failed
// the required-step check; the handler renders it as a 422.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %v", keys)
}

// CreateDeal re-runs the wizard's required steps against the submitted
// record. The client validates too, but external data is re-checked
// where it enters.
func (s *DealService) CreateDeal(ctx context.Context, rec storage.DealRecord) (*storage.Deal, error) {
	const op = "service.DealService.CreateDeal"

	fields := map[string]string{}
	for _, step := range wizard.Steps {
		if !step.Required {
			continue
		}
		for field, msg := range wizard.ValidateStep(step.ID, &rec) {
			fields[field] = msg
		}
	}
	if rec.Probability < 0 || rec.Probability > 100 {
		fields["probability"] = "Probability must be between 0 and 100"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// The deal is attributed to whoever submitted it, which is not
	// necessarily the owner picked on the first step.
	createdBy := auth.UserID(ctx)
	if createdBy == "" {
		createdBy = rec.OwnerID
	}

	deal, err := s.storage.SaveDeal(ctx, rec, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return deal, nil
}

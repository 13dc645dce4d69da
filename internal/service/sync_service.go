package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crm-golang/internal/storage"
)

var ErrUnknownModule = errors.New("unknown sync module")

type SyncStorage interface {
	SaveSyncRun(ctx context.Context, run storage.SyncRun) error
	GetSyncRuns(ctx context.Context, module string, limit int) ([]*storage.SyncRun, error)
	GetAccount(ctx context.Context, id string) (*storage.Account, error)
	GetAccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error)
	SaveAccountEnrichment(ctx context.Context, enrichment storage.AccountEnrichment) error
}

// SyncService records manual synchronization passes per CRM module.
// Bookkeeping only: the external lead-generation connector is out of
// scope, so runs complete as soon as they are recorded.
type SyncService struct {
	storage SyncStorage
}

func NewSyncService(storage SyncStorage) *SyncService {
	return &SyncService{storage: storage}
}

var syncModules = map[string]bool{
	"leads":      true,
	"accounts":   true,
	"contacts":   true,
	"deals":      true,
	"activities": true,
}

func (s *SyncService) RunManual(ctx context.Context, module string, req storage.SyncRequest) (*storage.SyncRun, error) {
	const op = "service.SyncService.RunManual"

	if !syncModules[module] {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownModule, module)
	}

	now := time.Now().UTC()
	completed := now
	run := storage.SyncRun{
		ID:          uuid.NewString(),
		Module:      module,
		Direction:   req.Direction,
		Status:      storage.SyncStatusCompleted,
		Requested:   len(req.IDs),
		Synced:      len(req.IDs),
		StartedAt:   now,
		CompletedAt: &completed,
	}

	if err := s.storage.SaveSyncRun(ctx, run); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &run, nil
}

// EnrichAccount refreshes the stored enrichment snapshot for one
// account. No external provider is wired in, so the snapshot is built
// from the account record itself; fields only a provider could fill
// keep whatever was last stored. Each refresh is recorded as a
// completed sync run.
func (s *SyncService) EnrichAccount(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	const op = "service.SyncService.EnrichAccount"

	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enrichment, err := s.storage.GetAccountEnrichment(ctx, accountID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		enrichment = &storage.AccountEnrichment{
			AccountID:    accountID,
			FundingStage: "Unknown",
			HealthScore:  75,
			Confidence:   85,
		}
	}

	enrichment.Website = account.Website
	if enrichment.Website == nil && account.Domain != nil {
		website := "https://" + *account.Domain
		enrichment.Website = &website
	}
	enrichment.Industry = account.Industry
	enrichment.AnnualRevenue = account.Revenue
	enrichment.Phone = account.Phone
	enrichment.Headquarters = account.Country
	enrichment.DataSources = []string{"crm_data"}
	enrichment.LastEnriched = time.Now().UTC()

	if err := s.storage.SaveAccountEnrichment(ctx, *enrichment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.recordRun(ctx, "accounts", "pull"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return enrichment, nil
}

// AccountEnrichment reads the stored snapshot without refreshing it.
func (s *SyncService) AccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	const op = "service.SyncService.AccountEnrichment"

	enrichment, err := s.storage.GetAccountEnrichment(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return enrichment, nil
}

func (s *SyncService) recordRun(ctx context.Context, module, direction string) error {
	now := time.Now().UTC()
	completed := now
	return s.storage.SaveSyncRun(ctx, storage.SyncRun{
		ID:          uuid.NewString(),
		Module:      module,
		Direction:   direction,
		Status:      storage.SyncStatusCompleted,
		Requested:   1,
		Synced:      1,
		StartedAt:   now,
		CompletedAt: &completed,
	})
}

func (s *SyncService) Status(ctx context.Context, module string) ([]*storage.SyncRun, error) {
	const op = "service.SyncService.Status"

	runs, err := s.storage.GetSyncRuns(ctx, module, 20)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return runs, nil
}

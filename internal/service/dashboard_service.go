package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"crm-golang/internal/storage"
)

type DashboardStorage interface {
	CountLeads(ctx context.Context) (int, error)
	CountAccounts(ctx context.Context) (int, error)
	CountContacts(ctx context.Context) (int, error)
	GetDeals(ctx context.Context) ([]*storage.Deal, error)
}

type DashboardService struct {
	storage DashboardStorage
}

func NewDashboardService(storage DashboardStorage) *DashboardService {
	return &DashboardService{storage: storage}
}

// Summary fans out the independent reads and folds the deal list into
// per-stage counts and totals.
func (s *DashboardService) Summary(ctx context.Context) (*storage.DashboardSummary, error) {
	const op = "service.DashboardService.Summary"

	var (
		leads, accounts, contacts int
		deals                     []*storage.Deal
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leads, err = s.storage.CountLeads(gCtx)
		if err != nil {
			return fmt.Errorf("leads: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accounts, err = s.storage.CountAccounts(gCtx)
		if err != nil {
			return fmt.Errorf("accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		contacts, err = s.storage.CountContacts(gCtx)
		if err != nil {
			return fmt.Errorf("contacts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		deals, err = s.storage.GetDeals(gCtx)
		if err != nil {
			return fmt.Errorf("deals: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &storage.DashboardSummary{
		LeadCount:    leads,
		AccountCount: accounts,
		ContactCount: contacts,
		DealsByStage: map[string]int{},
		ValueByStage: map[string]float64{},
	}

	for _, deal := range deals {
		summary.DealsByStage[deal.StageID]++
		summary.ValueByStage[deal.StageID] += deal.Amount

		if deal.StageID == "closed-won" || deal.StageID == "closed-lost" {
			continue
		}
		summary.OpenDeals++
		summary.PipelineValue += deal.Amount
		summary.WeightedValue += deal.Amount * float64(deal.Probability) / 100
	}

	return summary, nil
}

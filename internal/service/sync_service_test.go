package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-golang/internal/storage"
)

type MockSyncStorage struct {
	mock.Mock
}

func (m *MockSyncStorage) SaveSyncRun(ctx context.Context, run storage.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockSyncStorage) GetSyncRuns(ctx context.Context, module string, limit int) ([]*storage.SyncRun, error) {
	args := m.Called(ctx, module, limit)

	var runs []*storage.SyncRun
	if args.Get(0) != nil {
		runs = args.Get(0).([]*storage.SyncRun)
	}
	return runs, args.Error(1)
}

func (m *MockSyncStorage) GetAccount(ctx context.Context, id string) (*storage.Account, error) {
	args := m.Called(ctx, id)

	var account *storage.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*storage.Account)
	}
	return account, args.Error(1)
}

func (m *MockSyncStorage) GetAccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	args := m.Called(ctx, accountID)

	var enrichment *storage.AccountEnrichment
	if args.Get(0) != nil {
		enrichment = args.Get(0).(*storage.AccountEnrichment)
	}
	return enrichment, args.Error(1)
}

func (m *MockSyncStorage) SaveAccountEnrichment(ctx context.Context, enrichment storage.AccountEnrichment) error {
	args := m.Called(ctx, enrichment)
	return args.Error(0)
}

func TestRunManual_RecordsCompletedRun(t *testing.T) {
	store := new(MockSyncStorage)
	store.On("SaveSyncRun", mock.Anything, mock.MatchedBy(func(run storage.SyncRun) bool {
		return run.Module == "leads" &&
			run.Status == storage.SyncStatusCompleted &&
			run.Requested == 2 && run.Synced == 2 &&
			run.CompletedAt != nil
	})).Return(nil)

	svc := NewSyncService(store)

	run, err := svc.RunManual(context.Background(), "leads", storage.SyncRequest{
		Direction: "push",
		IDs:       []string{"lead-1", "lead-2"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "push", run.Direction)

	store.AssertExpectations(t)
}

func TestRunManual_UnknownModule(t *testing.T) {
	store := new(MockSyncStorage)
	svc := NewSyncService(store)

	_, err := svc.RunManual(context.Background(), "invoices", storage.SyncRequest{Direction: "pull"})
	assert.ErrorIs(t, err, ErrUnknownModule)
	store.AssertNotCalled(t, "SaveSyncRun")
}

func TestEnrichAccount_SnapshotsAccountData(t *testing.T) {
	domain := "acme.io"
	industry := "SaaS"
	revenue := 1_200_000.0

	store := new(MockSyncStorage)
	store.On("GetAccount", mock.Anything, "acc-1").Return(&storage.Account{
		ID: "acc-1", Name: "Acme", Domain: &domain, Industry: &industry, Revenue: &revenue,
	}, nil)
	store.On("GetAccountEnrichment", mock.Anything, "acc-1").Return(nil, storage.ErrNotFound)
	store.On("SaveAccountEnrichment", mock.Anything, mock.MatchedBy(func(e storage.AccountEnrichment) bool {
		return e.AccountID == "acc-1" &&
			e.Website != nil && *e.Website == "https://acme.io" &&
			e.Industry != nil && *e.Industry == "SaaS" &&
			e.AnnualRevenue != nil && *e.AnnualRevenue == revenue &&
			len(e.DataSources) == 1 && e.DataSources[0] == "crm_data" &&
			!e.LastEnriched.IsZero()
	})).Return(nil)
	store.On("SaveSyncRun", mock.Anything, mock.MatchedBy(func(run storage.SyncRun) bool {
		return run.Module == "accounts" && run.Direction == "pull" &&
			run.Status == storage.SyncStatusCompleted
	})).Return(nil)

	svc := NewSyncService(store)

	enrichment, err := svc.EnrichAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 75, enrichment.HealthScore)
	assert.Equal(t, 85, enrichment.Confidence)
	assert.Equal(t, "Unknown", enrichment.FundingStage)

	store.AssertExpectations(t)
}

func TestEnrichAccount_KeepsFieldsOnlyProvidersFill(t *testing.T) {
	website := "https://acme.io"

	store := new(MockSyncStorage)
	store.On("GetAccount", mock.Anything, "acc-1").
		Return(&storage.Account{ID: "acc-1", Name: "Acme", Website: &website}, nil)
	store.On("GetAccountEnrichment", mock.Anything, "acc-1").Return(&storage.AccountEnrichment{
		AccountID:    "acc-1",
		Technologies: []string{"React", "Go"},
		FundingStage: "Series A",
		HealthScore:  90,
		Confidence:   70,
	}, nil)
	store.On("SaveAccountEnrichment", mock.Anything, mock.MatchedBy(func(e storage.AccountEnrichment) bool {
		return len(e.Technologies) == 2 && e.FundingStage == "Series A" &&
			e.HealthScore == 90 && e.Confidence == 70
	})).Return(nil)
	store.On("SaveSyncRun", mock.Anything, mock.Anything).Return(nil)

	svc := NewSyncService(store)

	_, err := svc.EnrichAccount(context.Background(), "acc-1")
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestEnrichAccount_UnknownAccount(t *testing.T) {
	store := new(MockSyncStorage)
	store.On("GetAccount", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

	svc := NewSyncService(store)

	_, err := svc.EnrichAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	store.AssertNotCalled(t, "SaveAccountEnrichment")
	store.AssertNotCalled(t, "SaveSyncRun")
}

func TestAccountEnrichment_ReadIsNotARefresh(t *testing.T) {
	store := new(MockSyncStorage)
	store.On("GetAccountEnrichment", mock.Anything, "acc-1").
		Return(&storage.AccountEnrichment{AccountID: "acc-1", HealthScore: 75}, nil)

	svc := NewSyncService(store)

	enrichment, err := svc.AccountEnrichment(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", enrichment.AccountID)

	store.AssertNotCalled(t, "SaveAccountEnrichment")
	store.AssertNotCalled(t, "SaveSyncRun")
}

func TestStatus_LimitsHistory(t *testing.T) {
	store := new(MockSyncStorage)
	store.On("GetSyncRuns", mock.Anything, "deals", 20).
		Return([]*storage.SyncRun{{ID: "run-1", Module: "deals"}}, nil)

	svc := NewSyncService(store)

	runs, err := svc.Status(context.Background(), "deals")
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	store.AssertExpectations(t)
}

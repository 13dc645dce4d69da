package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-golang/internal/storage"
)

type MockDashboardStorage struct {
	mock.Mock
}

func (m *MockDashboardStorage) CountLeads(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardStorage) CountAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardStorage) CountContacts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardStorage) GetDeals(ctx context.Context) ([]*storage.Deal, error) {
	args := m.Called(ctx)

	var deals []*storage.Deal
	if args.Get(0) != nil {
		deals = args.Get(0).([]*storage.Deal)
	}
	return deals, args.Error(1)
}

func TestSummary_FoldsDealsByStage(t *testing.T) {
	store := new(MockDashboardStorage)
	store.On("CountLeads", mock.Anything).Return(12, nil)
	store.On("CountAccounts", mock.Anything).Return(5, nil)
	store.On("CountContacts", mock.Anything).Return(9, nil)
	store.On("GetDeals", mock.Anything).Return([]*storage.Deal{
		{StageID: "qualification", Amount: 1000, Probability: 10},
		{StageID: "negotiation", Amount: 2000, Probability: 50},
		{StageID: "closed-won", Amount: 5000, Probability: 100},
		{StageID: "closed-lost", Amount: 300, Probability: 0},
	}, nil)

	svc := NewDashboardService(store)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, summary.LeadCount)
	assert.Equal(t, 5, summary.AccountCount)
	assert.Equal(t, 9, summary.ContactCount)

	assert.Equal(t, 1, summary.DealsByStage["qualification"])
	assert.Equal(t, 1, summary.DealsByStage["closed-won"])
	assert.Equal(t, 5000.0, summary.ValueByStage["closed-won"])

	// closed stages are counted per stage but excluded from the open totals
	assert.Equal(t, 2, summary.OpenDeals)
	assert.Equal(t, 3000.0, summary.PipelineValue)
	assert.Equal(t, 1100.0, summary.WeightedValue)
}

func TestSummary_EmptyPipeline(t *testing.T) {
	store := new(MockDashboardStorage)
	store.On("CountLeads", mock.Anything).Return(0, nil)
	store.On("CountAccounts", mock.Anything).Return(0, nil)
	store.On("CountContacts", mock.Anything).Return(0, nil)
	store.On("GetDeals", mock.Anything).Return([]*storage.Deal{}, nil)

	svc := NewDashboardService(store)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.OpenDeals)
	assert.NotNil(t, summary.DealsByStage)
	assert.NotNil(t, summary.ValueByStage)
}

func TestSummary_PropagatesStorageError(t *testing.T) {
	store := new(MockDashboardStorage)
	store.On("CountLeads", mock.Anything).Return(0, errors.New("db down"))
	store.On("CountAccounts", mock.Anything).Return(0, nil)
	store.On("CountContacts", mock.Anything).Return(0, nil)
	store.On("GetDeals", mock.Anything).Return([]*storage.Deal{}, nil)

	svc := NewDashboardService(store)

	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
}

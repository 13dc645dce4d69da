package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-golang/internal/middleware/auth"
	"crm-golang/internal/storage"
)

type MockDealStorage struct {
	mock.Mock
}

func (m *MockDealStorage) SaveDeal(ctx context.Context, rec storage.DealRecord, createdBy string) (*storage.Deal, error) {
	args := m.Called(ctx, rec, createdBy)

	var deal *storage.Deal
	if args.Get(0) != nil {
		deal = args.Get(0).(*storage.Deal)
	}
	return deal, args.Error(1)
}

func validRecord() storage.DealRecord {
	return storage.DealRecord{
		OwnerID:     "user-1",
		DealType:    "renewal",
		Country:     "US",
		Name:        "Acme Renewal",
		PipelineID:  "default-pipeline",
		Currency:    "USD",
		StageID:     "qualification",
		Probability: 10,
		PlatformFee: 500,
		LicenseFee:  250,
		Amount:      750,
	}
}

func TestCreateDeal_Success(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	rec := validRecord()
	store.On("SaveDeal", mock.Anything, rec, "user-1").
		Return(&storage.Deal{ID: "deal-1", DealNumber: 7, Name: "Acme Renewal"}, nil)

	deal, err := svc.CreateDeal(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deal.DealNumber)

	store.AssertExpectations(t)
}

func TestCreateDeal_AuthenticatedUserIsCreatedBy(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	rec := validRecord() // owned by user-1, submitted by user-2
	store.On("SaveDeal", mock.Anything, rec, "user-2").
		Return(&storage.Deal{ID: "deal-1", DealNumber: 8}, nil)

	ctx := auth.WithUser(context.Background(), "user-2")
	_, err := svc.CreateDeal(ctx, rec)
	require.NoError(t, err)

	store.AssertExpectations(t)
}

func TestCreateDeal_RejectsIncompleteRecord(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	rec := validRecord()
	rec.OwnerID = ""
	rec.Name = ""

	deal, err := svc.CreateDeal(context.Background(), rec)
	assert.Nil(t, deal)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Deal owner is required", verr.Fields["owner_id"])
	assert.Equal(t, "Deal name is required", verr.Fields["name"])

	store.AssertNotCalled(t, "SaveDeal")
}

func TestCreateDeal_RejectsFeeMismatch(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	rec := validRecord()
	rec.Amount = 1000 // fees still sum to 750

	_, err := svc.CreateDeal(context.Background(), rec)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Total fees must equal deal amount", verr.Fields["amount"])
}

func TestCreateDeal_RejectsProbabilityOutOfRange(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	rec := validRecord()
	rec.Probability = 120

	_, err := svc.CreateDeal(context.Background(), rec)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "probability")
}

func TestCreateDeal_StorageErrorWrapped(t *testing.T) {
	store := new(MockDealStorage)
	svc := NewDealService(store)

	dbErr := errors.New("connection reset")
	store.On("SaveDeal", mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := svc.CreateDeal(context.Background(), validRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

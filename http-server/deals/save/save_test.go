package save

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"crm-golang/internal/service"
	"crm-golang/internal/storage"
)

type MockDealCreator struct {
	mock.Mock
}

func (m *MockDealCreator) CreateDeal(ctx context.Context, rec storage.DealRecord) (*storage.Deal, error) {
	args := m.Called(ctx, rec)

	var deal *storage.Deal
	if args.Get(0) != nil {
		deal = args.Get(0).(*storage.Deal)
	}
	return deal, args.Error(1)
}

func TestSaveDeal_Success(t *testing.T) {
	mockCreator := new(MockDealCreator)

	mockCreator.On("CreateDeal", mock.Anything, mock.MatchedBy(func(rec storage.DealRecord) bool {
		return rec.Name == "Acme Renewal" && rec.Amount == 750
	})).Return(&storage.Deal{ID: "deal-1", DealNumber: 42, Name: "Acme Renewal"}, nil)

	handler := SaveDeal(slog.Default(), mockCreator)

	reqBody := `{
		"owner_id": "user-1",
		"deal_type": "renewal",
		"country": "US",
		"name": "Acme Renewal",
		"pipeline_id": "default-pipeline",
		"amount": 750,
		"platform_fee": 500,
		"license_fee": 250
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/deals", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var deal storage.Deal
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &deal)
	assert.NoError(t, err)
	assert.Equal(t, "deal-1", deal.ID)
	assert.Equal(t, int64(42), deal.DealNumber)

	mockCreator.AssertExpectations(t)
}

func TestSaveDeal_ValidationErrors(t *testing.T) {
	mockCreator := new(MockDealCreator)

	mockCreator.On("CreateDeal", mock.Anything, mock.Anything).
		Return(nil, &service.ValidationError{Fields: map[string]string{
			"owner_id": "Deal owner is required",
			"amount":   "Amount must be greater than 0",
		}})

	handler := SaveDeal(slog.Default(), mockCreator)

	req := httptest.NewRequest(http.MethodPost, "/api/deals", strings.NewReader(`{"name": "No owner"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "Deal owner is required", resp.Errors["owner_id"])
}

func TestSaveDeal_InvalidJSON(t *testing.T) {
	mockCreator := new(MockDealCreator)
	handler := SaveDeal(slog.Default(), mockCreator)

	req := httptest.NewRequest(http.MethodPost, "/api/deals", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockCreator.AssertNotCalled(t, "CreateDeal")
}

func TestSaveDeal_StorageFailure(t *testing.T) {
	mockCreator := new(MockDealCreator)
	mockCreator.On("CreateDeal", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	handler := SaveDeal(slog.Default(), mockCreator)

	req := httptest.NewRequest(http.MethodPost, "/api/deals", strings.NewReader(`{"name": "Acme"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

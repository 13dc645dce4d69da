package accounts_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crm-golang/http-server/accounts"
	"crm-golang/internal/storage"
)

type MockAccountSyncer struct {
	mock.Mock
}

func (m *MockAccountSyncer) RunManual(ctx context.Context, module string, req storage.SyncRequest) (*storage.SyncRun, error) {
	args := m.Called(ctx, module, req)

	var run *storage.SyncRun
	if args.Get(0) != nil {
		run = args.Get(0).(*storage.SyncRun)
	}
	return run, args.Error(1)
}

func (m *MockAccountSyncer) Status(ctx context.Context, module string) ([]*storage.SyncRun, error) {
	args := m.Called(ctx, module)

	var runs []*storage.SyncRun
	if args.Get(0) != nil {
		runs = args.Get(0).([]*storage.SyncRun)
	}
	return runs, args.Error(1)
}

func (m *MockAccountSyncer) EnrichAccount(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	args := m.Called(ctx, accountID)

	var enrichment *storage.AccountEnrichment
	if args.Get(0) != nil {
		enrichment = args.Get(0).(*storage.AccountEnrichment)
	}
	return enrichment, args.Error(1)
}

func (m *MockAccountSyncer) AccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error) {
	args := m.Called(ctx, accountID)

	var enrichment *storage.AccountEnrichment
	if args.Get(0) != nil {
		enrichment = args.Get(0).(*storage.AccountEnrichment)
	}
	return enrichment, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func syncRouter(syncer *MockAccountSyncer) *chi.Mux {
	log := discardLogger()
	router := chi.NewRouter()
	router.Post("/api/accounts/{id}/sync-to-leadgen", accounts.SyncAccountToLeadgen(log, syncer))
	router.Post("/api/accounts/{id}/enrich", accounts.EnrichAccount(log, syncer))
	router.Get("/api/accounts/{id}/enrichment", accounts.GetAccountEnrichment(log, syncer))
	return router
}

func TestSyncAccountToLeadgen_RecordsPushRun(t *testing.T) {
	syncer := new(MockAccountSyncer)
	syncer.On("RunManual", mock.Anything, "accounts", storage.SyncRequest{
		Direction: "push",
		IDs:       []string{"acc-1"},
	}).Return(&storage.SyncRun{ID: "run-1", Module: "accounts", Direction: "push"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/acc-1/sync-to-leadgen", nil)
	rr := httptest.NewRecorder()
	syncRouter(syncer).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var run storage.SyncRun
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
	assert.Equal(t, "run-1", run.ID)

	syncer.AssertExpectations(t)
}

func TestEnrichAccount_ReturnsSnapshot(t *testing.T) {
	website := "https://acme.io"

	syncer := new(MockAccountSyncer)
	syncer.On("EnrichAccount", mock.Anything, "acc-1").
		Return(&storage.AccountEnrichment{AccountID: "acc-1", Website: &website, HealthScore: 75}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/acc-1/enrich", nil)
	rr := httptest.NewRecorder()
	syncRouter(syncer).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var enrichment storage.AccountEnrichment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &enrichment))
	assert.Equal(t, "acc-1", enrichment.AccountID)
	require.NotNil(t, enrichment.Website)
	assert.Equal(t, website, *enrichment.Website)
}

func TestEnrichAccount_UnknownAccountIs404(t *testing.T) {
	syncer := new(MockAccountSyncer)
	syncer.On("EnrichAccount", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/ghost/enrich", nil)
	rr := httptest.NewRecorder()
	syncRouter(syncer).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAccountEnrichment_EmptyUntilFirstEnrich(t *testing.T) {
	syncer := new(MockAccountSyncer)
	syncer.On("AccountEnrichment", mock.Anything, "acc-1").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/acc-1/enrichment", nil)
	rr := httptest.NewRecorder()
	syncRouter(syncer).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
}

func TestGetAccountEnrichment_ReturnsStoredSnapshot(t *testing.T) {
	syncer := new(MockAccountSyncer)
	syncer.On("AccountEnrichment", mock.Anything, "acc-1").
		Return(&storage.AccountEnrichment{AccountID: "acc-1", Confidence: 85}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/acc-1/enrichment", nil)
	rr := httptest.NewRecorder()
	syncRouter(syncer).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var enrichment storage.AccountEnrichment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &enrichment))
	assert.Equal(t, 85, enrichment.Confidence)
}

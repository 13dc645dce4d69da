package draft

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"

	"crm-golang/internal/draft"
	"crm-golang/internal/storage"
)

func newStore(t *testing.T) *draft.FileStore {
	t.Helper()
	return draft.NewFileStore(filepath.Join(t.TempDir(), "dealDraft.json"))
}

func TestDraftEndpoints_EmptySlotIs204(t *testing.T) {
	store := newStore(t)
	handler := GetDraft(slog.Default(), store)

	req := httptest.NewRequest(http.MethodGet, "/api/deals/draft", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDraftEndpoints_SaveThenGet(t *testing.T) {
	store := newStore(t)

	body := `{"name": "Acme Renewal", "amount": 750, "owner_id": "user-1"}`
	req := httptest.NewRequest(http.MethodPut, "/api/deals/draft", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	SaveDraft(slog.Default(), store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/deals/draft", nil)
	rr = httptest.NewRecorder()
	GetDraft(slog.Default(), store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var rec storage.DealRecord
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &rec)
	assert.NoError(t, err)
	assert.Equal(t, "Acme Renewal", rec.Name)
	assert.Equal(t, 750.0, rec.Amount)
}

func TestDraftEndpoints_Clear(t *testing.T) {
	store := newStore(t)
	assert.NoError(t, store.Save(storage.DealRecord{Name: "Acme Renewal"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/deals/draft", nil)
	rr := httptest.NewRecorder()
	ClearDraft(slog.Default(), store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/deals/draft", nil)
	rr = httptest.NewRecorder()
	GetDraft(slog.Default(), store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDraftEndpoints_InvalidJSON(t *testing.T) {
	store := newStore(t)

	req := httptest.NewRequest(http.MethodPut, "/api/deals/draft", strings.NewReader(`{`))
	rr := httptest.NewRecorder()
	SaveDraft(slog.Default(), store).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-golang/internal/storage"
)

func TestClient_DecodesJSONByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leads/lead-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(storage.Lead{ID: "lead-1", FirstName: "Ada"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	lead, err := c.Lead(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", lead.FirstName)
}

func TestClient_RawTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	c := New(srv.URL)

	var out string
	err := c.get(context.Background(), "/ping", &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestClient_NoContentSkipsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)

	rec, err := c.Draft(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec, "empty slot comes back as nil, not a zero record")
}

func TestClient_DraftRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(storage.DealRecord{Name: "Acme Renewal", Amount: 750})
	}))
	defer srv.Close()

	c := New(srv.URL)

	rec, err := c.Draft(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Acme Renewal", rec.Name)
}

func TestClient_AccountEnrichmentEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/accounts/acc-1/enrich":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(storage.AccountEnrichment{AccountID: "acc-1", HealthScore: 75})
		case r.Method == http.MethodGet && r.URL.Path == "/api/accounts/acc-1/enrichment":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/accounts/acc-1/sync-to-leadgen":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(storage.SyncRun{ID: "run-1", Module: "accounts", Direction: "push"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	enrichment, err := c.EnrichAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 75, enrichment.HealthScore)

	// the slot reads as nil until the first enrich
	stored, err := c.AccountEnrichment(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	run, err := c.SyncAccountToLeadgen(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "push", run.Direction)
}

func TestClient_ClientErrorNeverRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no such lead", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Lead(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "no such lead")
	assert.Equal(t, int32(1), calls.Load(), "4xx is final, no retry")
}

func TestClient_ServerErrorRetriedOnReads(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Leads(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ReadRetryCap(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Leads(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, int32(1+readRetries), calls.Load())
}

func TestClient_MutationsAreOneShot(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.CreateDeal(context.Background(), storage.DealRecord{Name: "Acme Renewal"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a POST is never silently replayed")
}

func TestClient_BearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("secret-token"))

	_, err := c.Deals(context.Background())
	require.NoError(t, err)
}

func TestClient_QueryFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "qualified", r.URL.Query().Get("status"))
		assert.Equal(t, "acme", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Leads(context.Background(), "qualified", "acme")
	require.NoError(t, err)
}

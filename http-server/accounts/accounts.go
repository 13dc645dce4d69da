package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"crm-golang/internal/storage"
)

type AccountStorage interface {
	GetAccounts(ctx context.Context) ([]*storage.Account, error)
	GetAccount(ctx context.Context, id string) (*storage.Account, error)
	SaveAccount(ctx context.Context, account storage.Account) (*storage.Account, error)
	UpdateAccount(ctx context.Context, id string, patch map[string]any) (*storage.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	GetActivitiesFor(ctx context.Context, relatedType, relatedID string) ([]*storage.Activity, error)
}

type AccountSyncer interface {
	RunManual(ctx context.Context, module string, req storage.SyncRequest) (*storage.SyncRun, error)
	Status(ctx context.Context, module string) ([]*storage.SyncRun, error)
	EnrichAccount(ctx context.Context, accountID string) (*storage.AccountEnrichment, error)
	AccountEnrichment(ctx context.Context, accountID string) (*storage.AccountEnrichment, error)
}

var validate = validator.New()

type saveAccountRequest struct {
	Name     string   `json:"name" validate:"required"`
	Domain   *string  `json:"domain"`
	Industry *string  `json:"industry"`
	Size     string   `json:"size" validate:"required,oneof=startup small medium large enterprise"`
	Revenue  *float64 `json:"revenue"`
	Website  *string  `json:"website"`
	Phone    *string  `json:"phone"`
	Country  *string  `json:"country"`
	OwnerID  string   `json:"owner_id" validate:"required"`
}

func GetAccounts(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.GetAccounts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := accounts.GetAccounts(ctx)
		if err != nil {
			log.Error("failed to list accounts", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Account{}
		}
		render.JSON(w, r, result)
	}
}

func GetAccount(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.GetAccount"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		account, err := accounts.GetAccount(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get account", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, account)
	}
}

func GetAccountActivities(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.GetAccountActivities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		activities, err := accounts.GetActivitiesFor(ctx, "account", chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to get account activities", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if activities == nil {
			activities = []*storage.Activity{}
		}
		render.JSON(w, r, activities)
	}
}

func SaveAccount(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.SaveAccount"

		var req saveAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		account, err := accounts.SaveAccount(ctx, storage.Account{
			Name:     req.Name,
			Domain:   req.Domain,
			Industry: req.Industry,
			Size:     req.Size,
			Revenue:  req.Revenue,
			Website:  req.Website,
			Phone:    req.Phone,
			Country:  req.Country,
			OwnerID:  req.OwnerID,
		})
		if err != nil {
			log.Error("failed to save account", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("account created", slog.String("account_id", account.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, account)
	}
}

func UpdateAccount(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.UpdateAccount"

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		account, err := accounts.UpdateAccount(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update account", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, account)
	}
}

func DeleteAccount(log *slog.Logger, accounts AccountStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.DeleteAccount"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := accounts.DeleteAccount(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete account", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Per-account sync endpoints record bookkeeping runs scoped to one
// account id.

func SyncAccountActivities(log *slog.Logger, syncer AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.SyncAccountActivities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		run, err := syncer.RunManual(ctx, "activities", storage.SyncRequest{
			Direction: "push",
			IDs:       []string{chi.URLParam(r, "id")},
		})
		if err != nil {
			log.Error("failed to sync account activities", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, run)
	}
}

// SyncAccountToLeadgen pushes one account toward the lead-generation
// module. The connector itself is not wired in, so the run completes
// as soon as it is recorded.
func SyncAccountToLeadgen(log *slog.Logger, syncer AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.SyncAccountToLeadgen"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		run, err := syncer.RunManual(ctx, "accounts", storage.SyncRequest{
			Direction: "push",
			IDs:       []string{chi.URLParam(r, "id")},
		})
		if err != nil {
			log.Error("failed to sync account to leadgen", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, run)
	}
}

// EnrichAccount refreshes the stored enrichment snapshot and returns
// it. 404 when the account itself does not exist.
func EnrichAccount(log *slog.Logger, syncer AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.EnrichAccount"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		enrichment, err := syncer.EnrichAccount(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			log.Error("failed to enrich account", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, enrichment)
	}
}

// GetAccountEnrichment reads the stored snapshot; 204 until the account
// has been enriched at least once.
func GetAccountEnrichment(log *slog.Logger, syncer AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.GetAccountEnrichment"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		enrichment, err := syncer.AccountEnrichment(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			log.Error("failed to get account enrichment", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, enrichment)
	}
}

func GetAccountSyncStatus(log *slog.Logger, syncer AccountSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.accounts.GetAccountSyncStatus"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		runs, err := syncer.Status(ctx, "accounts")
		if err != nil {
			log.Error("failed to get sync status", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []*storage.SyncRun{}
		}
		render.JSON(w, r, runs)
	}
}

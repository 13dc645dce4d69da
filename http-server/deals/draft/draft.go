package draft

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"crm-golang/internal/storage"
)

// DraftStore is the single-slot store behind the wizard's autosave.
type DraftStore interface {
	Save(rec storage.DealRecord) error
	Load() (*storage.DealRecord, error)
	Clear() error
}

// GetDraft returns the persisted draft, or 204 when the slot is empty.
// A corrupted slot reads as empty by the store's contract.
func GetDraft(log *slog.Logger, drafts DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.GetDraft"

		rec, err := drafts.Load()
		if err != nil {
			log.Error("failed to load draft", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if rec == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		render.JSON(w, r, rec)
	}
}

func SaveDraft(log *slog.Logger, drafts DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.SaveDraft"

		var rec storage.DealRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := drafts.Save(rec); err != nil {
			log.Error("failed to save draft", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{"status": "saved"})
	}
}

func ClearDraft(log *slog.Logger, drafts DraftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.ClearDraft"

		if err := drafts.Clear(); err != nil {
			log.Error("failed to clear draft", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

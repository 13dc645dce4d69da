package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"crm-golang/internal/storage"
)

type LeadUpdater interface {
	UpdateLead(ctx context.Context, id string, patch map[string]any) (*storage.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

func UpdateLead(log *slog.Logger, leads LeadUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.UpdateLead"

		id := chi.URLParam(r, "id")

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lead, err := leads.UpdateLead(ctx, id, patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Lead not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update lead", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("lead updated", slog.String("lead_id", id))

		render.JSON(w, r, lead)
	}
}

func DeleteLead(log *slog.Logger, leads LeadUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.DeleteLead"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := leads.DeleteLead(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Lead not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete lead", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

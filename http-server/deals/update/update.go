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

type DealUpdater interface {
	UpdateDeal(ctx context.Context, id string, patch map[string]any) (*storage.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
}

func UpdateDeal(log *slog.Logger, deals DealUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.UpdateDeal"

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if p, ok := patch["probability"].(float64); ok && (p < 0 || p > 100) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"error": "probability must be between 0 and 100"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deal, err := deals.UpdateDeal(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Deal not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update deal", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, deal)
	}
}

func DeleteDeal(log *slog.Logger, deals DealUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.DeleteDeal"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deals.DeleteDeal(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Deal not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete deal", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

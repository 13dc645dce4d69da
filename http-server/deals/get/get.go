package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"crm-golang/internal/storage"
)

type DealReader interface {
	GetDeals(ctx context.Context) ([]*storage.Deal, error)
	GetDeal(ctx context.Context, id string) (*storage.Deal, error)
	GetDealsByAccount(ctx context.Context, accountID string) ([]*storage.Deal, error)
}

func GetDeals(log *slog.Logger, deals DealReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.GetDeals"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := deals.GetDeals(ctx)
		if err != nil {
			log.Error("failed to list deals", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Deal{}
		}
		render.JSON(w, r, result)
	}
}

func GetDeal(log *slog.Logger, deals DealReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.GetDeal"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deal, err := deals.GetDeal(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Deal not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get deal", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, deal)
	}
}

func GetDealsByAccount(log *slog.Logger, deals DealReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.GetDealsByAccount"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := deals.GetDealsByAccount(ctx, chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to list account deals", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Deal{}
		}
		render.JSON(w, r, result)
	}
}

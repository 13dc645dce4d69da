package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"crm-golang/internal/service"
	"crm-golang/internal/storage"
)

// DealCreator is the same contract the wizard uses for submission; the
// handler is just its HTTP face.
type DealCreator interface {
	CreateDeal(ctx context.Context, rec storage.DealRecord) (*storage.Deal, error)
}

func SaveDeal(log *slog.Logger, creator DealCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.deals.SaveDeal"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var rec storage.DealRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			log.Error("invalid JSON", slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		deal, err := creator.CreateDeal(ctx, rec)
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				log.Warn("deal failed validation", slog.Any("fields", vErr.Fields))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, map[string]any{"errors": vErr.Fields})
				return
			}
			log.Error("failed to create deal", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("deal created",
			slog.String("deal_id", deal.ID),
			slog.Int64("deal_number", deal.DealNumber),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, deal)
	}
}

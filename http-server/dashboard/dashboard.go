package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"crm-golang/internal/storage"
)

type Summarizer interface {
	Summary(ctx context.Context) (*storage.DashboardSummary, error)
}

func GetSummary(log *slog.Logger, service Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.dashboard.GetSummary"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		summary, err := service.Summary(ctx)
		if err != nil {
			log.Error("failed to build dashboard summary", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, summary)
	}
}

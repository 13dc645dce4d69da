package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"crm-golang/internal/service"
	"crm-golang/internal/storage"
)

type Syncer interface {
	RunManual(ctx context.Context, module string, req storage.SyncRequest) (*storage.SyncRun, error)
	Status(ctx context.Context, module string) ([]*storage.SyncRun, error)
}

var validate = validator.New()

func ManualSync(log *slog.Logger, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sync.ManualSync"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		module := chi.URLParam(r, "module")

		var req storage.SyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		run, err := syncer.RunManual(ctx, module, req)
		if err != nil {
			if errors.Is(err, service.ErrUnknownModule) {
				http.Error(w, "Unknown sync module", http.StatusBadRequest)
				return
			}
			log.Error("manual sync failed",
				slog.String("module", module), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("manual sync recorded",
			slog.String("module", module), slog.String("run_id", run.ID))

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, run)
	}
}

func GetSyncStatus(log *slog.Logger, syncer Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sync.GetSyncStatus"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		module := r.URL.Query().Get("module")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		runs, err := syncer.Status(ctx, module)
		if err != nil {
			log.Error("failed to get sync status", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []*storage.SyncRun{}
		}
		render.JSON(w, r, runs)
	}
}

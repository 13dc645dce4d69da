package pipelines

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

type PipelineStorage interface {
	GetPipelines(ctx context.Context) ([]*storage.Pipeline, error)
	GetPipeline(ctx context.Context, id string) (*storage.Pipeline, error)
	UpdatePipeline(ctx context.Context, p storage.Pipeline) error
}

var validate = validator.New()

func GetPipelines(log *slog.Logger, store PipelineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetPipelines"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		pipelines, err := store.GetPipelines(ctx)
		if err != nil {
			log.Error("failed to get pipelines",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if pipelines == nil {
			pipelines = []*storage.Pipeline{}
		}
		render.JSON(w, r, pipelines)
	}
}

func GetPipeline(log *slog.Logger, store PipelineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.GetPipeline"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := store.GetPipeline(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Pipeline not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get pipeline",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, p)
	}
}

type updatePipelineRequest struct {
	Name      string                  `json:"name" validate:"required"`
	IsDefault bool                    `json:"is_default"`
	Stages    []storage.PipelineStage `json:"stages" validate:"required,min=1,dive"`
}

func UpdatePipeline(log *slog.Logger, store PipelineStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.admin.UpdatePipeline"

		var req updatePipelineRequest
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

		p := storage.Pipeline{
			ID:        chi.URLParam(r, "id"),
			Name:      req.Name,
			IsDefault: req.IsDefault,
			Stages:    req.Stages,
		}

		if err := store.UpdatePipeline(ctx, p); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Pipeline not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update pipeline",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("pipeline updated", slog.String("op", op), slog.String("pipeline_id", p.ID))

		render.JSON(w, r, p)
	}
}

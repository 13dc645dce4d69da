package activities

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

	"crm-golang/internal/storage"
)

type ActivityStorage interface {
	GetActivities(ctx context.Context) ([]*storage.Activity, error)
	SaveActivity(ctx context.Context, activity storage.Activity) (*storage.Activity, error)
	UpdateActivity(ctx context.Context, id string, patch map[string]any) (*storage.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}

var validate = validator.New()

func GetActivities(log *slog.Logger, store ActivityStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.activities.GetActivities"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		acts, err := store.GetActivities(ctx)
		if err != nil {
			log.Error("failed to get activities", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if acts == nil {
			acts = []*storage.Activity{}
		}
		render.JSON(w, r, acts)
	}
}

type saveActivityRequest struct {
	Type        string     `json:"type" validate:"required,oneof=call email meeting note task"`
	Subject     string     `json:"subject" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=planned completed cancelled"`
	DueDate     *time.Time `json:"due_date"`
	RelatedTo   *string    `json:"related_to"`
	RelatedType *string    `json:"related_type" validate:"omitempty,oneof=lead account contact deal"`
	AssignedTo  string     `json:"assigned_to" validate:"required"`
}

func SaveActivity(log *slog.Logger, store ActivityStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.activities.SaveActivity"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req saveActivityRequest
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

		act, err := store.SaveActivity(ctx, storage.Activity{
			Type:        req.Type,
			Subject:     req.Subject,
			Description: req.Description,
			Status:      req.Status,
			DueDate:     req.DueDate,
			RelatedTo:   req.RelatedTo,
			RelatedType: req.RelatedType,
			AssignedTo:  req.AssignedTo,
		})
		if err != nil {
			log.Error("failed to save activity", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("activity created", slog.String("activity_id", act.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, act)
	}
}

func UpdateActivity(log *slog.Logger, store ActivityStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.activities.UpdateActivity"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		act, err := store.UpdateActivity(ctx, id, patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Activity not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update activity", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, act)
	}
}

func DeleteActivity(log *slog.Logger, store ActivityStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.activities.DeleteActivity"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeleteActivity(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Activity not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete activity",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

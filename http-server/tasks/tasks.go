package tasks

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

type TaskStorage interface {
	GetTasks(ctx context.Context) ([]*storage.Task, error)
	SaveTask(ctx context.Context, task storage.Task) (*storage.Task, error)
	UpdateTask(ctx context.Context, id string, patch map[string]any) (*storage.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

var validate = validator.New()

func GetTasks(log *slog.Logger, store TaskStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.tasks.GetTasks"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tasks, err := store.GetTasks(ctx)
		if err != nil {
			log.Error("failed to get tasks", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if tasks == nil {
			tasks = []*storage.Task{}
		}
		render.JSON(w, r, tasks)
	}
}

type saveTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority" validate:"required,oneof=low medium high"`
	Status      string     `json:"status" validate:"required,oneof=open in_progress done"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  string     `json:"assigned_to" validate:"required"`
	RelatedTo   *string    `json:"related_to"`
}

func SaveTask(log *slog.Logger, store TaskStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.tasks.SaveTask"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req saveTaskRequest
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

		task, err := store.SaveTask(ctx, storage.Task{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Status:      req.Status,
			DueDate:     req.DueDate,
			AssignedTo:  req.AssignedTo,
			RelatedTo:   req.RelatedTo,
		})
		if err != nil {
			log.Error("failed to save task", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("task created", slog.String("task_id", task.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, task)
	}
}

func UpdateTask(log *slog.Logger, store TaskStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.tasks.UpdateTask"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		task, err := store.UpdateTask(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Task not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update task", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, task)
	}
}

func DeleteTask(log *slog.Logger, store TaskStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.tasks.DeleteTask"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeleteTask(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Task not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete task",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package meetings

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

type MeetingStorage interface {
	GetMeetings(ctx context.Context) ([]*storage.Meeting, error)
	SaveMeeting(ctx context.Context, meeting storage.Meeting) (*storage.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

var validate = validator.New()

func GetMeetings(log *slog.Logger, store MeetingStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.meetings.GetMeetings"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		meetings, err := store.GetMeetings(ctx)
		if err != nil {
			log.Error("failed to get meetings", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if meetings == nil {
			meetings = []*storage.Meeting{}
		}
		render.JSON(w, r, meetings)
	}
}

type saveMeetingRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Location    *string   `json:"location"`
	OrganizerID string    `json:"organizer_id" validate:"required"`
	RelatedTo   *string   `json:"related_to"`
}

func SaveMeeting(log *slog.Logger, store MeetingStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.meetings.SaveMeeting"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req saveMeetingRequest
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

		meeting, err := store.SaveMeeting(ctx, storage.Meeting{
			Title:       req.Title,
			Description: req.Description,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
			Location:    req.Location,
			OrganizerID: req.OrganizerID,
			RelatedTo:   req.RelatedTo,
		})
		if err != nil {
			log.Error("failed to save meeting", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("meeting created", slog.String("meeting_id", meeting.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, meeting)
	}
}

func DeleteMeeting(log *slog.Logger, store MeetingStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.meetings.DeleteMeeting"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeleteMeeting(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Meeting not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete meeting",
				slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"crm-golang/internal/storage"
)

type LeadSaver interface {
	SaveLead(ctx context.Context, lead storage.Lead) (*storage.Lead, error)
}

var validate = validator.New()

type saveLeadRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Industry  *string `json:"industry"`
	Source    string  `json:"source" validate:"required"`
	Status    string  `json:"status"`
	Score     int     `json:"score" validate:"min=0,max=100"`
	OwnerID   string  `json:"owner_id" validate:"required"`
}

func SaveLead(log *slog.Logger, leads LeadSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.SaveLead"

		var req saveLeadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			log.Warn("lead failed validation", slog.String("op", op), slog.String("error", err.Error()))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lead, err := leads.SaveLead(ctx, storage.Lead{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Company:   req.Company,
			Position:  req.Position,
			Industry:  req.Industry,
			Source:    req.Source,
			Status:    req.Status,
			Score:     req.Score,
			OwnerID:   req.OwnerID,
		})
		if err != nil {
			log.Error("failed to save lead", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("lead created", slog.String("lead_id", lead.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, lead)
	}
}

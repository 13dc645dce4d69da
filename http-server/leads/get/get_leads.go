package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"crm-golang/internal/storage"
)

type LeadReader interface {
	GetLeads(ctx context.Context, status, search string) ([]*storage.Lead, error)
	GetLead(ctx context.Context, id string) (*storage.Lead, error)
	GetLeadFiles(ctx context.Context, leadID string) ([]*storage.LeadFile, error)
	GetActivitiesFor(ctx context.Context, relatedType, relatedID string) ([]*storage.Activity, error)
	GetContactsByLead(ctx context.Context, leadID string) ([]*storage.Contact, error)
	GetDealsByLead(ctx context.Context, leadID string) ([]*storage.Deal, error)
}

func GetLeadsFilter(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLeadsFilter"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := r.URL.Query().Get("status")
		search := r.URL.Query().Get("search")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := leads.GetLeads(ctx, status, search)
		if err != nil {
			log.Error("failed to list leads", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Lead{}
		}

		render.JSON(w, r, result)
	}
}

func GetLead(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLead"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lead, err := leads.GetLead(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Lead not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get lead", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, lead)
	}
}

// Nested reads for the lead detail page tabs.

func GetLeadActivities(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLeadActivities"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		activities, err := leads.GetActivitiesFor(ctx, "lead", chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to get lead activities", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if activities == nil {
			activities = []*storage.Activity{}
		}
		render.JSON(w, r, activities)
	}
}

func GetLeadContacts(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLeadContacts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contacts, err := leads.GetContactsByLead(ctx, chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to get lead contacts", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if contacts == nil {
			contacts = []*storage.Contact{}
		}
		render.JSON(w, r, contacts)
	}
}

func GetLeadDeals(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLeadDeals"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deals, err := leads.GetDealsByLead(ctx, chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to get lead deals", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if deals == nil {
			deals = []*storage.Deal{}
		}
		render.JSON(w, r, deals)
	}
}

func GetLeadFiles(log *slog.Logger, leads LeadReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.leads.GetLeadFiles"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		files, err := leads.GetLeadFiles(ctx, chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to get lead files", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if files == nil {
			files = []*storage.LeadFile{}
		}
		render.JSON(w, r, files)
	}
}

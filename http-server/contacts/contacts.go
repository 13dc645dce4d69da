package contacts

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

type ContactStorage interface {
	GetContacts(ctx context.Context) ([]*storage.Contact, error)
	GetContact(ctx context.Context, id string) (*storage.Contact, error)
	GetContactsByAccount(ctx context.Context, accountID string) ([]*storage.Contact, error)
	SaveContact(ctx context.Context, contact storage.Contact) (*storage.Contact, error)
	UpdateContact(ctx context.Context, id string, patch map[string]any) (*storage.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

var validate = validator.New()

type saveContactRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	AccountID  *string `json:"account_id"`
	OwnerID    string  `json:"owner_id" validate:"required"`
}

func GetContacts(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.GetContacts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := contacts.GetContacts(ctx)
		if err != nil {
			log.Error("failed to list contacts", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Contact{}
		}
		render.JSON(w, r, result)
	}
}

func GetContact(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.GetContact"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contact, err := contacts.GetContact(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Contact not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get contact", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, contact)
	}
}

func GetContactsByAccount(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.GetContactsByAccount"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := contacts.GetContactsByAccount(ctx, chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to list account contacts", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []*storage.Contact{}
		}
		render.JSON(w, r, result)
	}
}

func SaveContact(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.SaveContact"

		var req saveContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contact, err := contacts.SaveContact(ctx, storage.Contact{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			Position:   req.Position,
			Department: req.Department,
			AccountID:  req.AccountID,
			OwnerID:    req.OwnerID,
		})
		if err != nil {
			log.Error("failed to save contact", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, contact)
	}
}

func UpdateContact(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.UpdateContact"

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Bad request: invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contact, err := contacts.UpdateContact(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Contact not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update contact", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		render.JSON(w, r, contact)
	}
}

func DeleteContact(log *slog.Logger, contacts ContactStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.contacts.DeleteContact"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := contacts.DeleteContact(ctx, chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Contact not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete contact", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/service"
)

type directoryService interface {
	Users(ctx context.Context) ([]domain.User, error)
	RemoveUser(ctx context.Context, id string) (service.Result, error)
}

type DirectoryHandler struct {
	bank     directoryService
	currency string
}

func NewDirectoryHandler(bank directoryService, currencyCode string) *DirectoryHandler {
	return &DirectoryHandler{bank: bank, currency: currencyCode}
}

type directoryEntryDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AccountNumber string    `json:"account_number"`
	Balance       amountDTO `json:"balance"`
}

func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.bank.Users(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	out := make([]directoryEntryDTO, 0, len(users))
	for _, u := range users {
		out = append(out, directoryEntryDTO{
			ID:            u.ID,
			Name:          u.FullName(),
			Email:         u.Email,
			AccountNumber: u.AccountNumber,
			Balance:       toAmount(u.Balance, h.currency),
		})
	}
	RespondSuccess(w, http.StatusOK, out)
}

func (h *DirectoryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		RespondValidationError(w, []FieldError{{Field: "id", Message: "required"}})
		return
	}
	if _, err := h.bank.RemoveUser(r.Context(), id); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, nil)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
)

const maxBackupBytes = 5 << 20

type backupService interface {
	Export(ctx context.Context) ([]byte, string, error)
	Import(ctx context.Context, data []byte) (service.Result, error)
	ClearAll(ctx context.Context) (service.Result, error)
	Stats(ctx context.Context) (repository.Stats, error)
}

type BackupHandler struct {
	bank     backupService
	currency string
}

func NewBackupHandler(bank backupService, currencyCode string) *BackupHandler {
	return &BackupHandler{bank: bank, currency: currencyCode}
}

// Export downloads the backup file itself rather than an API envelope.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.bank.Export(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.FromContext(r.Context()).Error("failed to write backup", "error", err)
	}
}

func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondAppError(w, ErrBackupTooLarge, nil)
			return
		}
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	res, err := h.bank.Import(r.Context(), data)
	respondResult(w, r, http.StatusOK, res, err, h.currency)
}

func (h *BackupHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.bank.ClearAll(r.Context()); err != nil {
		RespondDomainError(w, err)
		return
	}
	ClearSessionCookie(w)
	RespondSuccess(w, http.StatusOK, nil)
}

type statsResponse struct {
	CurrentUserKB json.Number `json:"current_user_kb"`
	AllUsersKB    json.Number `json:"all_users_kb"`
	TotalKB       json.Number `json:"total_kb"`
	UserCount     int         `json:"user_count"`
}

func (h *BackupHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.bank.Stats(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, statsResponse{
		CurrentUserKB: json.Number(repository.KB(s.CurrentUserBytes).String()),
		AllUsersKB:    json.Number(repository.KB(s.UsersBytes).String()),
		TotalKB:       json.Number(repository.KB(s.TotalBytes()).String()),
		UserCount:     s.UserCount,
	})
}

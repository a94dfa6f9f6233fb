package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrNotSignedIn      = &AppError{http.StatusUnauthorized, "NOT_SIGNED_IN", "No user is signed in"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrMethodNotAllowed = &AppError{http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInsufficientFunds = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient balance"}
	ErrUserExists        = &AppError{http.StatusConflict, "USER_ALREADY_EXISTS", "A user with this email already exists"}
	ErrMalformedSnapshot = &AppError{http.StatusBadRequest, "MALFORMED_SNAPSHOT", "Backup data is not valid"}
	ErrPersistenceFailed = &AppError{http.StatusServiceUnavailable, "PERSISTENCE_FAILED", "Changes could not be saved"}
	ErrBackupTooLarge    = &AppError{http.StatusRequestEntityTooLarge, "BACKUP_TOO_LARGE", "Backup file is too large"}
)

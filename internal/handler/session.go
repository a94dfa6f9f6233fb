package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/service"
	"github.com/josh-kwaku/securebank/internal/session"
)

type accountService interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	OpenAccount(ctx context.Context, in service.OpenAccountInput) (service.Result, error)
	SignIn(ctx context.Context, email string) (service.Result, error)
	Logout(ctx context.Context) (service.Result, error)
}

type sessionIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Info(ctx context.Context, token string, users session.CurrentUserLoader) (session.Info, bool)
	TTL() time.Duration
}

type SessionHandler struct {
	bank     accountService
	sessions sessionIssuer
	currency string
	secure   bool
}

func NewSessionHandler(bank accountService, sessions sessionIssuer, currencyCode string, secureCookies bool) *SessionHandler {
	return &SessionHandler{bank: bank, sessions: sessions, currency: currencyCode, secure: secureCookies}
}

type openAccountRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	AccountType string `json:"account_type"`
}

type signInRequest struct {
	Email string `json:"email"`
}

func (r signInRequest) Validate() []FieldError {
	if r.Email == "" {
		return []FieldError{{Field: "email", Message: "required"}}
	}
	return nil
}

type sessionResponse struct {
	User      userDTO   `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionInfoResponse struct {
	Active  bool     `json:"active"`
	UserID  string   `json:"user_id,omitempty"`
	IsValid bool     `json:"is_valid"`
	User    *userDTO `json:"user,omitempty"`
}

func (h *SessionHandler) setCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *SessionHandler) startSession(w http.ResponseWriter, r *http.Request, status int, u domain.User) {
	token, expires, err := h.sessions.Issue(u.ID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to issue session", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}
	h.setCookie(w, token, expires)
	RespondSuccess(w, status, sessionResponse{User: toUserDTO(u, h.currency), ExpiresAt: expires})
}

func (h *SessionHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.OpenAccount(r.Context(), service.OpenAccountInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		AccountType: req.AccountType,
	})
	if err != nil {
		respondResult(w, r, http.StatusCreated, res, err, h.currency)
		return
	}
	h.startSession(w, r, http.StatusCreated, *res.User)
}

func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decode(w, r, &req) {
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}
	res, err := h.bank.SignIn(r.Context(), req.Email)
	if err != nil {
		respondResult(w, r, http.StatusOK, res, err, h.currency)
		return
	}
	h.startSession(w, r, http.StatusOK, *res.User)
}

func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if _, err := h.bank.Logout(r.Context()); err != nil {
		RespondDomainError(w, err)
		return
	}
	ClearSessionCookie(w)
	RespondSuccess(w, http.StatusOK, nil)
}

func (h *SessionHandler) Info(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(session.CookieName); err == nil {
		token = c.Value
	}

	info, ok := h.sessions.Info(r.Context(), token, h.bank)
	if !ok {
		RespondSuccess(w, http.StatusOK, sessionInfoResponse{})
		return
	}
	out := sessionInfoResponse{Active: true, UserID: info.UserID, IsValid: info.IsValid}
	if info.User != nil {
		u := toUserDTO(*info.User, h.currency)
		out.User = &u
	}
	RespondSuccess(w, http.StatusOK, out)
}

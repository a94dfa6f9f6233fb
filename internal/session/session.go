package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/josh-kwaku/securebank/internal/domain"
)

const (
	CookieName = "bankSession"
	DefaultTTL = 24 * time.Hour
)

var ErrMissingSubject = errors.New("session token has no subject")

// Manager issues and checks session tokens. A token names exactly one user id
// and expires a fixed TTL after issuance.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(secret string, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(userID string) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	return signed, expires, nil
}

// Validate returns the user id the token was issued for.
func (m *Manager) Validate(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("Validate: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("Validate: invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("Validate: %w", ErrMissingSubject)
	}
	return claims.Subject, nil
}

type CurrentUserLoader interface {
	CurrentUser(ctx context.Context) (domain.User, error)
}

// Info is for display. Nothing in the ledger is gated on it.
type Info struct {
	UserID  string
	IsValid bool
	User    *domain.User
}

// Info describes the session carried by token. ok is false when there is no
// usable token at all. IsValid additionally requires the stored current user
// to load and to be the user the token names.
func (m *Manager) Info(ctx context.Context, token string, users CurrentUserLoader) (Info, bool) {
	if token == "" {
		return Info{}, false
	}
	userID, err := m.Validate(token)
	if err != nil {
		return Info{}, false
	}

	info := Info{UserID: userID}
	u, err := users.CurrentUser(ctx)
	if err != nil {
		return info, true
	}
	info.User = &u
	info.IsValid = u.ID == userID
	return info, true
}

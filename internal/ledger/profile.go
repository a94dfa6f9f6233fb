package ledger

import (
	"strings"
	"time"

	"github.com/josh-kwaku/securebank/internal/domain"
)

// ProfileUpdate replaces the contact fields of a user. Balance, ledger and
// holdings are never touched, and the values are stored as given (trimmed).
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (ProfileUpdate) Name() string { return "UpdateProfile" }

func (p ProfileUpdate) apply(_ *Engine, u domain.User, _ time.Time) (domain.User, *domain.Transaction, error) {
	u.FirstName = strings.TrimSpace(p.FirstName)
	u.LastName = strings.TrimSpace(p.LastName)
	u.Email = strings.TrimSpace(p.Email)
	u.Phone = strings.TrimSpace(p.Phone)
	return u, nil, nil
}

func (e *Engine) UpdateProfile(u domain.User, req ProfileUpdate) (Outcome, error) {
	return e.Apply(u, req)
}

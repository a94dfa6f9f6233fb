package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type seqIDs struct{ n int }

func (s *seqIDs) NewID(time.Time) string {
	s.n++
	return fmt.Sprintf("id-%04d", s.n)
}

func newTestEngine() *Engine {
	return NewEngine(
		WithClock(func() time.Time { return testNow }),
		WithIDSource(&seqIDs{}),
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func userWithBalance(balance string) domain.User {
	u := domain.NewUser("user-1", testNow.Add(-24*time.Hour))
	u.FirstName = "Ada"
	u.LastName = "Lovelace"
	u.Email = "ada@example.com"
	u.Balance = dec(balance)
	return u
}

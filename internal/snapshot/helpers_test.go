package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/ledger"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type seqIDs struct{ n int }

func (s *seqIDs) NewID(time.Time) string {
	s.n++
	return fmt.Sprintf("id-%04d", s.n)
}

// populatedUser runs a user through every ledger operation so the record has
// something in each collection.
func populatedUser(t *testing.T, id, email string) domain.User {
	t.Helper()
	e := ledger.NewEngine(
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithIDSource(&seqIDs{}),
	)
	u := domain.NewUser(id, testNow.Add(-time.Hour))
	u.FirstName = "Ada"
	u.LastName = "Lovelace"
	u.Email = email
	u.Phone = "+44 20 7946 0000"
	u.DateOfBirth = "1815-12-10"
	u.AccountNumber = "1234567890"

	ops := []ledger.Operation{
		ledger.CreditRequest{Amount: decimal.RequireFromString("50000")},
		ledger.DebitRequest{Amount: decimal.RequireFromString("1250.75"), Recipient: "Charles"},
		ledger.SIPRequest{FundName: "Axis Bluechip Fund", MonthlyAmount: decimal.RequireFromString("500"), Duration: 5},
		ledger.FDRequest{Amount: decimal.RequireFromString("10000"), Tenure: 3},
		ledger.RDRequest{MonthlyAmount: decimal.RequireFromString("250"), Tenure: 2},
	}
	for _, op := range ops {
		out, err := e.Apply(u, op)
		require.NoError(t, err, op.Name())
		u = out.User
	}
	return u
}

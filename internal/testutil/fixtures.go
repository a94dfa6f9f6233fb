package testutil

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

var FixtureTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// NewTestUser builds a directory-ready user with an opening credit, so its
// balance and ledger agree.
func NewTestUser(t *testing.T, email, balance string) domain.User {
	t.Helper()

	u := domain.NewUser(uuid.NewString(), FixtureTime)
	u.FirstName = "Test"
	u.LastName = "User"
	u.Email = email
	u.Phone = "+1 555 0100"
	u.DateOfBirth = "1990-01-01"
	u.AccountNumber = "9876543210"

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("parse fixture balance %q: %v", balance, err)
	}
	if amount.IsPositive() {
		u.Balance = amount
		u.Transactions = append(u.Transactions, domain.Transaction{
			ID:          uuid.NewString(),
			Type:        domain.EntryTypeCredit,
			Amount:      amount,
			Description: "Opening balance",
			Date:        FixtureTime,
			Balance:     amount,
		})
	}
	return u
}

// StoredValue reads a key straight out of kv_store.
func StoredValue(t *testing.T, db *sql.DB, key string) (string, bool) {
	t.Helper()

	var value string
	err := db.QueryRow(`SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		t.Fatalf("read kv_store %s: %v", key, err)
	}
	return value, true
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeCredit EntryType = "credit"
	EntryTypeDebit  EntryType = "debit"
)

func (t EntryType) IsValid() bool {
	return t == EntryTypeCredit || t == EntryTypeDebit
}

// Transaction is an append-only ledger entry. Amount is always positive and
// Balance is the account balance immediately after the entry was applied.
type Transaction struct {
	ID          string
	Type        EntryType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Balance     decimal.Decimal
}

// Signed returns the amount as a balance delta.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == EntryTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

const DefaultCreditDescription = "Money Added"

type CreditRequest struct {
	Amount      decimal.Decimal
	Description string
}

func (CreditRequest) Name() string { return "Credit" }

func (r CreditRequest) apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error) {
	if err := requirePositive("amount", r.Amount); err != nil {
		return u, nil, err
	}

	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = DefaultCreditDescription
	}

	next, tx := e.applyEntry(u, domain.EntryTypeCredit, r.Amount, desc, now)
	return next, &tx, nil
}

// DebitRequest transfers money out of the account to Recipient.
type DebitRequest struct {
	Amount      decimal.Decimal
	Recipient   string
	Description string
}

func (DebitRequest) Name() string { return "Debit" }

func (r DebitRequest) apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error) {
	if err := requirePositive("amount", r.Amount); err != nil {
		return u, nil, err
	}
	if err := requireText("recipient", r.Recipient); err != nil {
		return u, nil, err
	}
	if err := checkFunds(u, r.Amount); err != nil {
		return u, nil, err
	}

	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		desc = "Transfer to " + strings.TrimSpace(r.Recipient)
	}

	next, tx := e.applyEntry(u, domain.EntryTypeDebit, r.Amount, desc, now)
	return next, &tx, nil
}

func (e *Engine) Credit(u domain.User, req CreditRequest) (Outcome, error) {
	return e.Apply(u, req)
}

func (e *Engine) Debit(u domain.User, req DebitRequest) (Outcome, error) {
	return e.Apply(u, req)
}

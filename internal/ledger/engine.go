// Package ledger is the account ledger engine. Operations are pure: they take
// a User snapshot and return the next snapshot together with the transaction
// they appended, leaving the input untouched. Persisting the result is the
// caller's job.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/idgen"
)

// Operation is one state transition of a User.
type Operation interface {
	Name() string
	apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error)
}

// Outcome is the snapshot produced by an operation. Transaction is nil for
// operations that do not touch the ledger.
type Outcome struct {
	User        domain.User
	Transaction *domain.Transaction
}

type Engine struct {
	now func() time.Time
	ids idgen.Source
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDSource(ids idgen.Source) Option {
	return func(e *Engine) { e.ids = ids }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		ids: idgen.NewULID(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs op against u. On error the returned Outcome carries u unchanged.
func (e *Engine) Apply(u domain.User, op Operation) (Outcome, error) {
	now := e.now().UTC()
	next, tx, err := op.apply(e, u.Clone(), now)
	if err != nil {
		return Outcome{User: u}, fmt.Errorf("%s: %w", op.Name(), err)
	}
	return Outcome{User: next, Transaction: tx}, nil
}

// applyEntry moves the balance and appends the matching transaction in one
// step. u must already be a private copy.
func (e *Engine) applyEntry(u domain.User, typ domain.EntryType, amount decimal.Decimal, description string, now time.Time) (domain.User, domain.Transaction) {
	balance := u.Balance.Add(amount)
	if typ == domain.EntryTypeDebit {
		balance = u.Balance.Sub(amount)
	}

	tx := domain.Transaction{
		ID:          e.ids.NewID(now),
		Type:        typ,
		Amount:      amount,
		Description: description,
		Date:        now,
		Balance:     balance,
	}
	u.Balance = balance
	u.Transactions = append(u.Transactions, tx)
	return u, tx
}

func checkFunds(u domain.User, amount decimal.Decimal) error {
	if amount.GreaterThan(u.Balance) {
		return fmt.Errorf("need %s, have %s: %w", amount, u.Balance, domain.ErrInsufficientFunds)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/idgen"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/snapshot"
)

type userRepository interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	SaveCurrentUser(ctx context.Context, u domain.User) error
	AllUsers(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	AddUser(ctx context.Context, u domain.User) error
	DeleteUser(ctx context.Context, id string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context, b snapshot.Bundle) error
	ClearAll(ctx context.Context) error
	Stats(ctx context.Context) (repository.Stats, error)
}

// Result is the outcome handed to the presentation layer. When a mutation was
// computed but could not be persisted, User holds the computed snapshot and
// Kind is domain.KindPersistence: the change is not durably committed.
type Result struct {
	Success     bool
	User        *domain.User
	Transaction *domain.Transaction
	Kind        domain.ErrorKind
	Message     string
}

func succeeded(u domain.User, tx *domain.Transaction) Result {
	return Result{Success: true, User: &u, Transaction: tx}
}

func failed(err error) Result {
	return Result{Kind: domain.KindOf(err), Message: Message(err)}
}

// Message renders err for an end user.
func Message(err error) string {
	var ve *domain.ValidationError
	var mse *domain.MalformedSnapshotError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &mse):
		return mse.Error()
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient balance"
	case errors.Is(err, domain.ErrNoCurrentUser):
		return "No user is signed in"
	case errors.Is(err, domain.ErrUserExists):
		return "A user with this email already exists"
	case errors.Is(err, domain.ErrNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrPersistence):
		return "Changes could not be saved"
	default:
		return "An unexpected error occurred"
	}
}

// BankService runs ledger operations against the stored current user. The
// mutex makes each load, apply and save a single step within this process.
type BankService struct {
	mu             sync.Mutex
	users          userRepository
	engine         *ledger.Engine
	ids            idgen.Source
	now            func() time.Time
	initialBalance decimal.Decimal
}

type Option func(*BankService)

func WithClock(now func() time.Time) Option {
	return func(s *BankService) { s.now = now }
}

func WithIDSource(ids idgen.Source) Option {
	return func(s *BankService) { s.ids = ids }
}

// WithInitialBalance credits every newly opened account with amount.
func WithInitialBalance(amount decimal.Decimal) Option {
	return func(s *BankService) { s.initialBalance = amount }
}

func NewBankService(users userRepository, engine *ledger.Engine, opts ...Option) *BankService {
	s := &BankService{
		users:          users,
		engine:         engine,
		ids:            idgen.NewULID(),
		now:            time.Now,
		initialBalance: decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutate loads the current user, applies op and saves the result.
func (s *BankService) mutate(ctx context.Context, op ledger.Operation) (Result, error) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.CurrentUser(ctx)
	if err != nil {
		return failed(err), fmt.Errorf("%s: %w", op.Name(), err)
	}

	out, err := s.engine.Apply(u, op)
	if err != nil {
		log.Info("ledger operation rejected",
			"operation", op.Name(),
			"user_id", u.ID,
			"reason", domain.KindOf(err),
		)
		res := failed(err)
		res.User = &u
		return res, err
	}

	if err := s.users.SaveCurrentUser(ctx, out.User); err != nil {
		log.Error("ledger operation not persisted",
			"operation", op.Name(),
			"user_id", u.ID,
			"error", err,
		)
		res := failed(err)
		res.User = &out.User
		res.Transaction = out.Transaction
		return res, fmt.Errorf("%s: %w", op.Name(), err)
	}

	attrs := []any{
		"operation", op.Name(),
		"user_id", u.ID,
		"balance", out.User.Balance.String(),
	}
	if out.Transaction != nil {
		attrs = append(attrs,
			"transaction_id", out.Transaction.ID,
			"type", out.Transaction.Type,
			"amount", out.Transaction.Amount.String(),
		)
	}
	log.Info("ledger operation applied", attrs...)

	return succeeded(out.User, out.Transaction), nil
}

// CurrentUser returns the signed-in user's snapshot.
func (s *BankService) CurrentUser(ctx context.Context) (domain.User, error) {
	return s.users.CurrentUser(ctx)
}

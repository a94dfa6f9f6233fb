package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/logging"
)

const InitialDepositDescription = "Initial Deposit"

type OpenAccountInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string
	AccountType string
}

func (in OpenAccountInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" {
		return domain.NewValidationError("firstName", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return domain.NewValidationError("lastName", "required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return domain.NewValidationError("email", "must be a valid email address")
	}
	switch domain.AccountType(in.AccountType) {
	case "", domain.AccountTypeSavings, domain.AccountTypeCurrent:
	default:
		return domain.NewValidationError("accountType", "must be savings or current")
	}
	return nil
}

// OpenAccount registers a new user in the directory and signs them in.
func (s *BankService) OpenAccount(ctx context.Context, in OpenAccountInput) (Result, error) {
	log := logging.FromContext(ctx)

	if err := in.validate(); err != nil {
		return failed(err), fmt.Errorf("OpenAccount: %w", err)
	}

	acctNum, err := generateAccountNumber()
	if err != nil {
		return failed(err), fmt.Errorf("OpenAccount: %w", err)
	}

	now := s.now().UTC()
	u := domain.NewUser(s.ids.NewID(now), now)
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = strings.TrimSpace(in.Email)
	u.Phone = strings.TrimSpace(in.Phone)
	u.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	u.AccountNumber = acctNum
	if in.AccountType != "" {
		u.AccountType = in.AccountType
	}

	if s.initialBalance.IsPositive() {
		out, err := s.engine.Credit(u, ledger.CreditRequest{
			Amount:      s.initialBalance,
			Description: InitialDepositDescription,
		})
		if err != nil {
			return failed(err), fmt.Errorf("OpenAccount: %w", err)
		}
		u = out.User
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.AddUser(ctx, u); err != nil {
		return failed(err), fmt.Errorf("OpenAccount: %w", err)
	}
	if err := s.users.SaveCurrentUser(ctx, u); err != nil {
		res := failed(err)
		res.User = &u
		return res, fmt.Errorf("OpenAccount: %w", err)
	}

	log.Info("account opened",
		"user_id", u.ID,
		"account_type", u.AccountType,
		"balance", u.Balance.String(),
	)
	return succeeded(u, nil), nil
}

// SignIn makes the directory entry for email the current user.
func (s *BankService) SignIn(ctx context.Context, email string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return failed(err), fmt.Errorf("SignIn: %w", err)
	}
	if err := s.users.SaveCurrentUser(ctx, u); err != nil {
		return failed(err), fmt.Errorf("SignIn: %w", err)
	}

	logging.FromContext(ctx).Info("user signed in", "user_id", u.ID)
	return succeeded(u, nil), nil
}

func (s *BankService) Logout(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.Logout(ctx); err != nil {
		return failed(err), fmt.Errorf("Logout: %w", err)
	}
	logging.FromContext(ctx).Info("user signed out")
	return Result{Success: true}, nil
}

func (s *BankService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("Users: %w", err)
	}
	return users, nil
}

// RemoveUser deletes a directory entry. Deleting the signed-in user also
// signs them out.
func (s *BankService) RemoveUser(ctx context.Context, id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return failed(err), fmt.Errorf("RemoveUser: %w", err)
	}

	current, err := s.users.CurrentUser(ctx)
	switch {
	case err == nil && current.ID == id:
		if err := s.users.Logout(ctx); err != nil {
			return failed(err), fmt.Errorf("RemoveUser: %w", err)
		}
	case err != nil && !errors.Is(err, domain.ErrNoCurrentUser):
		logging.FromContext(ctx).Warn("current user unreadable after delete", "error", err)
	}

	logging.FromContext(ctx).Info("user removed", "user_id", id)
	return Result{Success: true}, nil
}

func generateAccountNumber() (string, error) {
	digits := make([]byte, 10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generateAccountNumber: %w", err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}

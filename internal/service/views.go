package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/investment"
	"github.com/josh-kwaku/securebank/internal/ledger"
)

type TransactionQuery struct {
	Type   string
	Search string
	Sort   string
}

// Transactions lists the current user's ledger filtered and ordered per q.
func (s *BankService) Transactions(ctx context.Context, q TransactionQuery) ([]domain.Transaction, error) {
	typ, err := ledger.ParseTypeFilter(q.Type)
	if err != nil {
		return nil, fmt.Errorf("Transactions: %w", err)
	}
	order, err := ledger.ParseSortOrder(q.Sort)
	if err != nil {
		return nil, fmt.Errorf("Transactions: %w", err)
	}
	u, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("Transactions: %w", err)
	}
	return ledger.ListTransactions(u.Transactions, ledger.Filter{Type: typ, Search: q.Search}, order), nil
}

func (s *BankService) Summary(ctx context.Context) (ledger.Summary, error) {
	u, err := s.users.CurrentUser(ctx)
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("Summary: %w", err)
	}
	return ledger.Summarize(u, s.now()), nil
}

type QuoteInput struct {
	Product      string
	Amount       string
	Tenure       string
	InterestRate string
}

// Quote estimates a deposit without touching the ledger. A blank rate takes
// the scheduled rate for the tenure.
func (s *BankService) Quote(_ context.Context, in QuoteInput) (investment.Quote, error) {
	amount, err := ledger.ParseAmount("amount", in.Amount)
	if err != nil {
		return investment.Quote{}, fmt.Errorf("Quote: %w", err)
	}
	tenure, err := ledger.ParseYears("tenure", in.Tenure)
	if err != nil {
		return investment.Quote{}, fmt.Errorf("Quote: %w", err)
	}
	rate, err := ledger.ParseRate("interestRate", in.InterestRate)
	if err != nil {
		return investment.Quote{}, fmt.Errorf("Quote: %w", err)
	}

	now := s.now().UTC()
	switch domain.ProductType(in.Product) {
	case domain.ProductFD:
		if !investment.IsFDTenure(tenure) {
			return investment.Quote{}, fmt.Errorf("Quote: %w", domain.NewValidationError("tenure", investment.TenureHint))
		}
		if rate.IsZero() {
			rate = investment.FDRate(tenure)
		}
		return investment.QuoteFD(amount, rate, tenure, now), nil
	case domain.ProductRD:
		if !investment.IsRDTenure(tenure) {
			return investment.Quote{}, fmt.Errorf("Quote: %w", domain.NewValidationError("tenure", investment.TenureHint))
		}
		if rate.IsZero() {
			rate = investment.RDRate(tenure)
		}
		return investment.QuoteRD(amount, rate, tenure, now), nil
	default:
		return investment.Quote{}, fmt.Errorf("Quote: %w", domain.NewValidationError("product", "must be fd or rd"))
	}
}

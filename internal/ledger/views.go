package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

type TypeFilter string

const (
	FilterAll    TypeFilter = "all"
	FilterCredit TypeFilter = "credit"
	FilterDebit  TypeFilter = "debit"
)

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCredit, FilterDebit:
		return f, nil
	default:
		return "", domain.NewValidationError("type", "must be all, credit or debit")
	}
}

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest:
		return o, nil
	default:
		return "", domain.NewValidationError("sort", "must be newest or oldest")
	}
}

type Filter struct {
	Type   TypeFilter
	Search string
}

func (f Filter) match(tx domain.Transaction) bool {
	if f.Type != "" && f.Type != FilterAll && string(tx.Type) != string(f.Type) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// ListTransactions filters txs and sorts the result by date. Equal dates keep
// their ledger order.
func ListTransactions(txs []domain.Transaction, f Filter, order SortOrder) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.match(tx) {
			out = append(out, tx)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Transaction) int {
		if order == SortOldest {
			return a.Date.Compare(b.Date)
		}
		return b.Date.Compare(a.Date)
	})
	return out
}

// RecentActivity returns the last n appended transactions, newest first.
func RecentActivity(u domain.User, n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	start := max(len(u.Transactions)-n, 0)
	recent := slices.Clone(u.Transactions[start:])
	slices.Reverse(recent)
	if recent == nil {
		recent = []domain.Transaction{}
	}
	return recent
}

// TotalInvestmentValue sums SIP current values, FD principals and RD current
// values. FD maturity amounts are not included.
func TotalInvestmentValue(u domain.User) decimal.Decimal {
	total := decimal.Zero
	for _, s := range u.Investments.SIP {
		total = total.Add(s.CurrentValue)
	}
	for _, f := range u.Investments.FD {
		total = total.Add(f.Amount)
	}
	for _, r := range u.Investments.RD {
		total = total.Add(r.CurrentValue)
	}
	return total
}

func inMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// MonthlyNet is credits minus debits dated in the calendar month of now.
func MonthlyNet(txs []domain.Transaction, now time.Time) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range txs {
		if inMonth(tx.Date, now) {
			net = net.Add(tx.Signed())
		}
	}
	return net
}

type Totals struct {
	Credits     decimal.Decimal
	Debits      decimal.Decimal
	CreditCount int
	DebitCount  int
}

func ComputeTotals(txs []domain.Transaction) Totals {
	t := Totals{Credits: decimal.Zero, Debits: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case domain.EntryTypeCredit:
			t.Credits = t.Credits.Add(tx.Amount)
			t.CreditCount++
		case domain.EntryTypeDebit:
			t.Debits = t.Debits.Add(tx.Amount)
			t.DebitCount++
		}
	}
	return t
}

const DashboardRecentCount = 5

// Summary is the dashboard view of a user.
type Summary struct {
	Balance          decimal.Decimal
	TotalInvestments decimal.Decimal
	SIPCount         int
	FDCount          int
	RDCount          int
	MonthlyNet       decimal.Decimal
	MonthlyCount     int
	Totals           Totals
	Recent           []domain.Transaction
}

func Summarize(u domain.User, now time.Time) Summary {
	monthly := 0
	for _, tx := range u.Transactions {
		if inMonth(tx.Date, now) {
			monthly++
		}
	}
	return Summary{
		Balance:          u.Balance,
		TotalInvestments: TotalInvestmentValue(u),
		SIPCount:         len(u.Investments.SIP),
		FDCount:          len(u.Investments.FD),
		RDCount:          len(u.Investments.RD),
		MonthlyNet:       MonthlyNet(u.Transactions, now),
		MonthlyCount:     monthly,
		Totals:           ComputeTotals(u.Transactions),
		Recent:           RecentActivity(u, DashboardRecentCount),
	}
}

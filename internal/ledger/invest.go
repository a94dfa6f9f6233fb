package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/investment"
)

// SIPRequest starts a systematic investment plan and books its first
// installment.
type SIPRequest struct {
	FundName      string
	MonthlyAmount decimal.Decimal
	Duration      int
}

func (SIPRequest) Name() string { return "CreateSIP" }

func (r SIPRequest) apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error) {
	if err := requirePositive("monthlyAmount", r.MonthlyAmount); err != nil {
		return u, nil, err
	}
	if err := requireMinimum("monthlyAmount", r.MonthlyAmount, investment.MinSIPMonthly); err != nil {
		return u, nil, err
	}
	if !investment.IsSIPDuration(r.Duration) {
		return u, nil, domain.NewValidationError("duration", "must be one of 1, 2, 3, 5, 10, 15 or 20 years")
	}
	fund := strings.TrimSpace(r.FundName)
	if err := requireText("fundName", fund); err != nil {
		return u, nil, err
	}
	if !investment.IsKnownFund(fund) {
		return u, nil, domain.NewValidationError("fundName", "unknown fund")
	}
	if err := checkFunds(u, r.MonthlyAmount); err != nil {
		return u, nil, err
	}

	sip := domain.SIPInvestment{
		ID:            e.ids.NewID(now),
		FundName:      fund,
		MonthlyAmount: r.MonthlyAmount,
		StartDate:     now,
		Duration:      r.Duration,
		CurrentValue:  r.MonthlyAmount,
	}

	next, tx := e.applyEntry(u, domain.EntryTypeDebit, r.MonthlyAmount, "SIP Investment - "+fund, now)
	next.Investments.SIP = append(next.Investments.SIP, sip)
	return next, &tx, nil
}

// FDRequest opens a fixed deposit. A zero InterestRate selects the scheduled
// rate for the tenure.
type FDRequest struct {
	Amount       decimal.Decimal
	Tenure       int
	InterestRate decimal.Decimal
}

func (FDRequest) Name() string { return "CreateFD" }

func (r FDRequest) apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error) {
	if err := requirePositive("amount", r.Amount); err != nil {
		return u, nil, err
	}
	if err := requireMinimum("amount", r.Amount, investment.MinFDAmount); err != nil {
		return u, nil, err
	}
	if !investment.IsFDTenure(r.Tenure) {
		return u, nil, domain.NewValidationError("tenure", investment.TenureHint)
	}
	rate, err := resolveRate(r.InterestRate, investment.FDRate(r.Tenure))
	if err != nil {
		return u, nil, err
	}
	if err := checkFunds(u, r.Amount); err != nil {
		return u, nil, err
	}

	fd := domain.FDInvestment{
		ID:             e.ids.NewID(now),
		Amount:         r.Amount,
		InterestRate:   rate,
		Tenure:         r.Tenure,
		StartDate:      now,
		MaturityDate:   investment.MaturityDate(now, r.Tenure),
		MaturityAmount: investment.FDMaturityAmount(r.Amount, rate, r.Tenure),
	}

	next, tx := e.applyEntry(u, domain.EntryTypeDebit, r.Amount, fmt.Sprintf("Fixed Deposit - %d year(s)", r.Tenure), now)
	next.Investments.FD = append(next.Investments.FD, fd)
	return next, &tx, nil
}

// RDRequest opens a recurring deposit and books its first installment.
type RDRequest struct {
	MonthlyAmount decimal.Decimal
	Tenure        int
	InterestRate  decimal.Decimal
}

func (RDRequest) Name() string { return "CreateRD" }

func (r RDRequest) apply(e *Engine, u domain.User, now time.Time) (domain.User, *domain.Transaction, error) {
	if err := requirePositive("monthlyAmount", r.MonthlyAmount); err != nil {
		return u, nil, err
	}
	if err := requireMinimum("monthlyAmount", r.MonthlyAmount, investment.MinRDMonthly); err != nil {
		return u, nil, err
	}
	if !investment.IsRDTenure(r.Tenure) {
		return u, nil, domain.NewValidationError("tenure", investment.TenureHint)
	}
	rate, err := resolveRate(r.InterestRate, investment.RDRate(r.Tenure))
	if err != nil {
		return u, nil, err
	}
	if err := checkFunds(u, r.MonthlyAmount); err != nil {
		return u, nil, err
	}

	rd := domain.RDInvestment{
		ID:             e.ids.NewID(now),
		MonthlyAmount:  r.MonthlyAmount,
		InterestRate:   rate,
		Tenure:         r.Tenure,
		StartDate:      now,
		MaturityDate:   investment.MaturityDate(now, r.Tenure),
		CurrentValue:   r.MonthlyAmount,
		MaturityAmount: decimal.NewNullDecimal(investment.RDMaturityAmount(r.MonthlyAmount, rate, r.Tenure)),
	}

	next, tx := e.applyEntry(u, domain.EntryTypeDebit, r.MonthlyAmount, fmt.Sprintf("Recurring Deposit - %d year(s)", r.Tenure), now)
	next.Investments.RD = append(next.Investments.RD, rd)
	return next, &tx, nil
}

func resolveRate(requested, scheduled decimal.Decimal) (decimal.Decimal, error) {
	if err := requireRate("interestRate", requested); err != nil {
		return decimal.Zero, err
	}
	if requested.IsZero() {
		return scheduled, nil
	}
	return requested, nil
}

func (e *Engine) CreateSIP(u domain.User, req SIPRequest) (Outcome, error) {
	return e.Apply(u, req)
}

func (e *Engine) CreateFD(u domain.User, req FDRequest) (Outcome, error) {
	return e.Apply(u, req)
}

func (e *Engine) CreateRD(u domain.User, req RDRequest) (Outcome, error) {
	return e.Apply(u, req)
}

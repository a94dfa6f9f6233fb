package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductSIP ProductType = "sip"
	ProductFD  ProductType = "fd"
	ProductRD  ProductType = "rd"
)

// SIPInvestment is a systematic investment plan. CurrentValue is a running
// total of booked installments, not a market valuation.
type SIPInvestment struct {
	ID            string
	FundName      string
	MonthlyAmount decimal.Decimal
	StartDate     time.Time
	Duration      int
	CurrentValue  decimal.Decimal
}

// FDInvestment is a fixed deposit. MaturityAmount is frozen at creation.
type FDInvestment struct {
	ID             string
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	Tenure         int
	StartDate      time.Time
	MaturityDate   time.Time
	MaturityAmount decimal.Decimal
}

// RDInvestment is a recurring deposit. MaturityAmount uses the linear
// approximation in investment.RDMaturityAmount and may be absent on records
// written before it was tracked.
type RDInvestment struct {
	ID             string
	MonthlyAmount  decimal.Decimal
	InterestRate   decimal.Decimal
	Tenure         int
	StartDate      time.Time
	MaturityDate   time.Time
	CurrentValue   decimal.Decimal
	MaturityAmount decimal.NullDecimal
}

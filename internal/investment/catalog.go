// Package investment holds the product catalog and the valuation rules for
// systematic investment plans, fixed deposits and recurring deposits.
package investment

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Funds is the fixed catalog of mutual funds a SIP may invest in.
var Funds = []string{
	"HDFC Top 100 Fund",
	"ICICI Prudential Bluechip Fund",
	"SBI Large Cap Fund",
	"Axis Bluechip Fund",
	"Kotak Select Focus Fund",
	"Mirae Asset Large Cap Fund",
	"Nippon India Large Cap Fund",
	"UTI Mastershare Fund",
}

// SIPDurations lists the plan lengths, in years, offered for a SIP.
var SIPDurations = []int{1, 2, 3, 5, 10, 15, 20}

var (
	MinSIPMonthly = decimal.NewFromInt(500)
	MinFDAmount   = decimal.NewFromInt(1000)
	MinRDMonthly  = decimal.NewFromInt(100)
)

// RateSlab is the rate quoted for a tenure in years.
type RateSlab struct {
	Tenure int
	Rate   decimal.Decimal
}

var (
	FDRates = []RateSlab{
		{1, decimal.RequireFromString("6.0")},
		{2, decimal.RequireFromString("6.25")},
		{3, decimal.RequireFromString("6.5")},
		{5, decimal.RequireFromString("6.75")},
		{10, decimal.RequireFromString("7.0")},
	}
	RDRates = []RateSlab{
		{1, decimal.RequireFromString("5.5")},
		{2, decimal.RequireFromString("5.75")},
		{3, decimal.RequireFromString("5.8")},
		{5, decimal.RequireFromString("6.0")},
		{10, decimal.RequireFromString("6.25")},
	}

	DefaultFDRate = decimal.RequireFromString("6.5")
	DefaultRDRate = decimal.RequireFromString("5.8")
)

func IsKnownFund(name string) bool {
	return slices.Contains(Funds, name)
}

func IsSIPDuration(years int) bool {
	return slices.Contains(SIPDurations, years)
}

// TenureHint is the validation message for a deposit tenure outside the
// rate schedule.
const TenureHint = "must be one of 1, 2, 3, 5 or 10 years"

// IsFDTenure reports whether years has a fixed deposit rate slab.
func IsFDTenure(years int) bool {
	return hasSlab(FDRates, years)
}

// IsRDTenure reports whether years has a recurring deposit rate slab.
func IsRDTenure(years int) bool {
	return hasSlab(RDRates, years)
}

func hasSlab(slabs []RateSlab, tenure int) bool {
	return slices.ContainsFunc(slabs, func(s RateSlab) bool { return s.Tenure == tenure })
}

// FDRate returns the scheduled fixed deposit rate for tenure, falling back to
// DefaultFDRate for tenures without a slab.
func FDRate(tenure int) decimal.Decimal {
	return lookupRate(FDRates, tenure, DefaultFDRate)
}

// RDRate returns the scheduled recurring deposit rate for tenure.
func RDRate(tenure int) decimal.Decimal {
	return lookupRate(RDRates, tenure, DefaultRDRate)
}

func lookupRate(slabs []RateSlab, tenure int, fallback decimal.Decimal) decimal.Decimal {
	for _, s := range slabs {
		if s.Tenure == tenure {
			return s.Rate
		}
	}
	return fallback
}

package investment

import (
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// growthFactor returns 1 + rate/100 for a percentage rate.
func growthFactor(ratePct decimal.Decimal) decimal.Decimal {
	return one.Add(ratePct.Shift(-2))
}

// FDMaturityAmount compounds principal annually:
// principal * (1 + rate/100) ^ tenure.
func FDMaturityAmount(principal, ratePct decimal.Decimal, tenure int) decimal.Decimal {
	factor := growthFactor(ratePct)
	amount := principal
	for range tenure {
		amount = amount.Mul(factor)
	}
	return amount
}

// RDMaturityAmount is monthly * 12 * tenure * (1 + rate/100).
//
// This is a linear approximation kept for compatibility with existing
// snapshots and quotes. It applies one year of simple interest to the whole
// contribution instead of compounding each installment, so it overstates
// short tenures and understates long ones.
func RDMaturityAmount(monthly, ratePct decimal.Decimal, tenure int) decimal.Decimal {
	return monthly.
		Mul(decimal.NewFromInt(12)).
		Mul(decimal.NewFromInt(int64(tenure))).
		Mul(growthFactor(ratePct))
}

// MaturityDate is start moved forward by tenure calendar years.
func MaturityDate(start time.Time, tenure int) time.Time {
	return start.AddDate(tenure, 0, 0)
}

// Quote is a pre-creation estimate shown before a deposit is opened.
type Quote struct {
	Product        string
	Principal      decimal.Decimal
	InterestRate   decimal.Decimal
	Tenure         int
	MaturityDate   time.Time
	MaturityAmount decimal.Decimal
}

func QuoteFD(amount, ratePct decimal.Decimal, tenure int, start time.Time) Quote {
	return Quote{
		Product:        "fd",
		Principal:      amount,
		InterestRate:   ratePct,
		Tenure:         tenure,
		MaturityDate:   MaturityDate(start, tenure),
		MaturityAmount: FDMaturityAmount(amount, ratePct, tenure),
	}
}

func QuoteRD(monthly, ratePct decimal.Decimal, tenure int, start time.Time) Quote {
	return Quote{
		Product:        "rd",
		Principal:      monthly.Mul(decimal.NewFromInt(int64(12 * tenure))),
		InterestRate:   ratePct,
		Tenure:         tenure,
		MaturityDate:   MaturityDate(start, tenure),
		MaturityAmount: RDMaturityAmount(monthly, ratePct, tenure),
	}
}

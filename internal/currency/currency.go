// Package currency renders decimal amounts for people. Stored and computed
// values stay decimal; only display goes through here.
package currency

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const DefaultCode = "INR"

// Format renders amount in the given ISO 4217 currency, rounded to the
// currency's minor unit. Unknown codes fall back to DefaultCode. Amounts whose
// minor units do not fit in an int64 are printed plainly after the code.
func Format(amount decimal.Decimal, code string) string {
	cur := lookup(code)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if b := minor.BigInt(); !b.IsInt64() || b.Int64() == math.MinInt64 {
		return cur.Code + " " + amount.StringFixed(int32(cur.Fraction))
	}
	return cur.Formatter().Format(minor.IntPart())
}

// Valid reports whether code names a currency go-money knows.
func Valid(code string) bool {
	return money.GetCurrency(code) != nil
}

func lookup(code string) *money.Currency {
	if cur := money.GetCurrency(code); cur != nil {
		return cur
	}
	return money.GetCurrency(DefaultCode)
}

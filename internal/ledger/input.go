package ledger

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/domain"
)

// ParseAmount turns user input into a positive decimal amount. Every
// money-moving operation takes its amount through here or through
// requirePositive, so the range rules live in one place.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, domain.NewValidationError(field, "required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "must be a number")
	}
	if err := requirePositive(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseYears parses a whole, positive number of years.
func ParseYears(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, domain.NewValidationError(field, "required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be a whole number of years")
	}
	if n <= 0 {
		return 0, domain.NewValidationError(field, "must be greater than 0")
	}
	return n, nil
}

// ParseRate parses an annual percentage rate. Blank input yields zero, which
// the deposit operations read as "use the scheduled rate".
func ParseRate(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "must be a number")
	}
	if err := requireRate(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

var maxRate = decimal.NewFromInt(100)

func requireRate(field string, d decimal.Decimal) error {
	if err := requireBounded(field, d); err != nil {
		return err
	}
	if d.IsNegative() {
		return domain.NewValidationError(field, "must not be negative")
	}
	if d.GreaterThan(maxRate) {
		return domain.NewValidationError(field, "must be at most 100")
	}
	return nil
}

// Input bounds. Exponent notation like 1e20000000 parses, so the digit
// count and scale are checked before anything multiplies the value.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 20
)

func requireBounded(field string, d decimal.Decimal) error {
	if int64(d.NumDigits())+int64(d.Exponent()) > maxIntegerDigits {
		return domain.NewValidationError(field, "is too large")
	}
	if -int64(d.Exponent()) > maxFractionDigits {
		return domain.NewValidationError(field, "has too many decimal places")
	}
	return nil
}

func requirePositive(field string, d decimal.Decimal) error {
	if err := requireBounded(field, d); err != nil {
		return err
	}
	if !d.IsPositive() {
		return domain.NewValidationError(field, "must be greater than 0")
	}
	return nil
}

func requireMinimum(field string, d, floor decimal.Decimal) error {
	if d.LessThan(floor) {
		return domain.NewValidationError(field, "must be at least "+floor.String())
	}
	return nil
}

func requireText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return domain.NewValidationError(field, "required")
	}
	return nil
}

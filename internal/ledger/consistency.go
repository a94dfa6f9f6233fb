package ledger

import (
	"errors"
	"fmt"

	"github.com/josh-kwaku/securebank/internal/domain"
)

var ErrInconsistent = errors.New("ledger inconsistent")

// CheckConsistency verifies that every entry is well formed, that each
// recorded balance follows from the previous one, and that the account
// balance equals the last recorded balance. The opening balance before the
// first entry is not known and is not checked.
func CheckConsistency(u domain.User) error {
	for i, tx := range u.Transactions {
		if !tx.Type.IsValid() {
			return fmt.Errorf("transaction %d (%s): unknown type %q: %w", i, tx.ID, tx.Type, ErrInconsistent)
		}
		if !tx.Amount.IsPositive() {
			return fmt.Errorf("transaction %d (%s): non-positive amount %s: %w", i, tx.ID, tx.Amount, ErrInconsistent)
		}
		if i == 0 {
			continue
		}
		want := u.Transactions[i-1].Balance.Add(tx.Signed())
		if !tx.Balance.Equal(want) {
			return fmt.Errorf("transaction %d (%s): balance %s, expected %s: %w", i, tx.ID, tx.Balance, want, ErrInconsistent)
		}
	}

	last, ok := u.LastTransaction()
	if ok && !last.Balance.Equal(u.Balance) {
		return fmt.Errorf("account balance %s differs from last entry %s: %w", u.Balance, last.Balance, ErrInconsistent)
	}
	return nil
}

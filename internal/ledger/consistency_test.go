package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/domain"
)

func TestCheckConsistency(t *testing.T) {
	good := userWithBalance("70")
	good.Transactions = sampleTransactions()
	require.NoError(t, CheckConsistency(good))

	empty := userWithBalance("123")
	require.NoError(t, CheckConsistency(empty))

	tests := []struct {
		name   string
		mutate func(u *domain.User)
	}{
		{"balance diverges from last entry", func(u *domain.User) { u.Balance = dec("71") }},
		{"broken running balance", func(u *domain.User) { u.Transactions[1].Balance = dec("61") }},
		{"negative amount", func(u *domain.User) { u.Transactions[2].Amount = dec("-10") }},
		{"unknown type", func(u *domain.User) { u.Transactions[0].Type = "refund" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := good.Clone()
			tc.mutate(&u)
			require.ErrorIs(t, CheckConsistency(u), ErrInconsistent)
		})
	}
}

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "t1", Type: domain.EntryTypeCredit, Amount: dec("100"), Description: "Money Added", Date: day(2024, 1, 1), Balance: dec("100")},
		{ID: "t2", Type: domain.EntryTypeDebit, Amount: dec("40"), Description: "Transfer to Bob", Date: day(2024, 1, 5), Balance: dec("60")},
		{ID: "t3", Type: domain.EntryTypeCredit, Amount: dec("10"), Description: "Refund from BOB's shop", Date: day(2024, 2, 1), Balance: dec("70")},
	}
}

func ids(txs []domain.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func TestListTransactions(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		order  SortOrder
		want   []string
	}{
		{name: "debit only", filter: Filter{Type: FilterDebit}, order: SortNewest, want: []string{"t2"}},
		{name: "credit only", filter: Filter{Type: FilterCredit}, order: SortOldest, want: []string{"t1", "t3"}},
		{name: "all newest first", filter: Filter{Type: FilterAll}, order: SortNewest, want: []string{"t3", "t2", "t1"}},
		{name: "all oldest first", filter: Filter{}, order: SortOldest, want: []string{"t1", "t2", "t3"}},
		{name: "search is case insensitive", filter: Filter{Search: "bob"}, order: SortOldest, want: []string{"t2", "t3"}},
		{name: "search and type combine", filter: Filter{Type: FilterCredit, Search: "BOB"}, order: SortOldest, want: []string{"t3"}},
		{name: "no match", filter: Filter{Search: "salary"}, order: SortNewest, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ListTransactions(sampleTransactions(), tc.filter, tc.order)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestListTransactionsOldestIsNonDecreasing(t *testing.T) {
	txs := sampleTransactions()
	txs[0], txs[2] = txs[2], txs[0]

	got := ListTransactions(txs, Filter{}, SortOldest)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date))
	}
}

func TestListTransactionsTiesKeepLedgerOrder(t *testing.T) {
	same := day(2024, 5, 5)
	txs := []domain.Transaction{
		{ID: "a", Type: domain.EntryTypeCredit, Amount: dec("1"), Date: same},
		{ID: "b", Type: domain.EntryTypeCredit, Amount: dec("1"), Date: same},
		{ID: "c", Type: domain.EntryTypeCredit, Amount: dec("1"), Date: same},
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(ListTransactions(txs, Filter{}, SortNewest)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(ListTransactions(txs, Filter{}, SortOldest)))
}

func TestParseFilterAndSort(t *testing.T) {
	f, err := ParseTypeFilter(" Debit ")
	require.NoError(t, err)
	assert.Equal(t, FilterDebit, f)

	f, err = ParseTypeFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseTypeFilter("refund")
	require.ErrorIs(t, err, domain.ErrValidation)

	o, err := ParseSortOrder("oldest")
	require.NoError(t, err)
	assert.Equal(t, SortOldest, o)

	_, err = ParseSortOrder("amount")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecentActivity(t *testing.T) {
	u := userWithBalance("70")
	u.Transactions = sampleTransactions()

	assert.Equal(t, []string{"t3", "t2"}, ids(RecentActivity(u, 2)))
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(RecentActivity(u, 5)))
	assert.Empty(t, RecentActivity(u, 0))
	assert.Equal(t, "t1", u.Transactions[0].ID, "source order untouched")
}

func TestTotalInvestmentValue(t *testing.T) {
	u := userWithBalance("0")
	u.Investments.SIP = []domain.SIPInvestment{{CurrentValue: dec("500")}, {CurrentValue: dec("1000")}}
	u.Investments.FD = []domain.FDInvestment{{Amount: dec("2000"), MaturityAmount: dec("2500")}}
	u.Investments.RD = []domain.RDInvestment{{CurrentValue: dec("100")}}

	assert.True(t, TotalInvestmentValue(u).Equal(dec("3600")))
}

func TestMonthlyNet(t *testing.T) {
	txs := sampleTransactions()
	txs = append(txs, domain.Transaction{ID: "t4", Type: domain.EntryTypeDebit, Amount: dec("25"), Date: day(2023, 1, 20)})

	assert.True(t, MonthlyNet(txs, day(2024, 1, 31)).Equal(dec("60")), "previous year's January is excluded")
	assert.True(t, MonthlyNet(txs, day(2024, 2, 10)).Equal(dec("10")))
	assert.True(t, MonthlyNet(txs, day(2024, 3, 1)).IsZero())
}

func TestSummarize(t *testing.T) {
	u := userWithBalance("70")
	u.Transactions = sampleTransactions()
	u.Investments.FD = []domain.FDInvestment{{Amount: dec("1000")}}

	s := Summarize(u, day(2024, 1, 15))

	assert.True(t, s.Balance.Equal(dec("70")))
	assert.True(t, s.TotalInvestments.Equal(dec("1000")))
	assert.Equal(t, 1, s.FDCount)
	assert.True(t, s.MonthlyNet.Equal(dec("60")))
	assert.Equal(t, 2, s.MonthlyCount)
	assert.True(t, s.Totals.Credits.Equal(dec("110")))
	assert.True(t, s.Totals.Debits.Equal(dec("40")))
	assert.Equal(t, 2, s.Totals.CreditCount)
	assert.Equal(t, 1, s.Totals.DebitCount)
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(s.Recent))
}

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/repository"
)

func TestPrintStatement(t *testing.T) {
	txs := []domain.Transaction{
		{
			ID:          "t2",
			Type:        domain.EntryTypeDebit,
			Amount:      decimal.RequireFromString("1250.5"),
			Description: "Transfer to Bob",
			Date:        time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			Balance:     decimal.RequireFromString("8749.5"),
		},
		{
			ID:          "t1",
			Type:        domain.EntryTypeCredit,
			Amount:      decimal.NewFromInt(10000),
			Description: "Initial Deposit",
			Date:        time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			Balance:     decimal.NewFromInt(10000),
		},
	}

	var buf bytes.Buffer
	printStatement(&buf, txs, "USD")
	out := buf.String()

	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "-$1,250.50")
	assert.Contains(t, out, "$8,749.50")
	assert.Contains(t, out, "2024-03-01 09:00")
}

func TestPrintUsers(t *testing.T) {
	u := domain.NewUser("u-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	u.FirstName, u.LastName, u.Email = "Ada", "Lovelace", "ada@example.com"
	u.Balance = decimal.NewFromInt(42)

	var buf bytes.Buffer
	printUsers(&buf, []domain.User{u}, "USD")

	assert.Contains(t, buf.String(), "Ada Lovelace")
	assert.Contains(t, buf.String(), "$42.00")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, repository.Stats{CurrentUserBytes: 1536, UsersBytes: 512, UserCount: 2})

	assert.Contains(t, buf.String(), "current user: 1.5 KB")
	assert.Contains(t, buf.String(), "(2 users)")
	assert.Contains(t, buf.String(), "total:        2 KB")
}

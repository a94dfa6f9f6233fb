package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "savings"
	AccountTypeCurrent AccountType = "current"
)

// User is the root aggregate: profile, cash balance, ledger and holdings.
// It is handled as a value; ledger operations return a new User rather than
// mutating the one they were given.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   string
	AccountType   string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     string
	Transactions  []Transaction
	Investments   Investments
}

type Investments struct {
	SIP []SIPInvestment
	FD  []FDInvestment
	RD  []RDInvestment
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// LastTransaction returns the most recently appended transaction.
func (u User) LastTransaction() (Transaction, bool) {
	if len(u.Transactions) == 0 {
		return Transaction{}, false
	}
	return u.Transactions[len(u.Transactions)-1], true
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	c := u
	c.Transactions = slices.Clone(u.Transactions)
	c.Investments = Investments{
		SIP: slices.Clone(u.Investments.SIP),
		FD:  slices.Clone(u.Investments.FD),
		RD:  slices.Clone(u.Investments.RD),
	}
	if c.Transactions == nil {
		c.Transactions = []Transaction{}
	}
	if c.Investments.SIP == nil {
		c.Investments.SIP = []SIPInvestment{}
	}
	if c.Investments.FD == nil {
		c.Investments.FD = []FDInvestment{}
	}
	if c.Investments.RD == nil {
		c.Investments.RD = []RDInvestment{}
	}
	return c
}

// NewUser returns an empty account holder created at now.
func NewUser(id string, now time.Time) User {
	return User{
		ID:           id,
		AccountType:  string(AccountTypeSavings),
		Balance:      decimal.Zero,
		CreatedAt:    now.UTC().Format(time.RFC3339Nano),
		Transactions: []Transaction{},
		Investments: Investments{
			SIP: []SIPInvestment{},
			FD:  []FDInvestment{},
			RD:  []RDInvestment{},
		},
	}
}

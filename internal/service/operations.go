package service

import (
	"context"

	"github.com/josh-kwaku/securebank/internal/ledger"
)

type CreditInput struct {
	Amount      string
	Description string
}

type TransferInput struct {
	Amount      string
	Recipient   string
	Description string
}

type SIPInput struct {
	FundName      string
	MonthlyAmount string
	Duration      string
}

// FDInput and RDInput leave InterestRate blank to take the scheduled rate.
type FDInput struct {
	Amount       string
	Tenure       string
	InterestRate string
}

type RDInput struct {
	MonthlyAmount string
	Tenure        string
	InterestRate  string
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (s *BankService) Credit(ctx context.Context, in CreditInput) (Result, error) {
	amount, err := ledger.ParseAmount("amount", in.Amount)
	if err != nil {
		return failed(err), err
	}
	return s.mutate(ctx, ledger.CreditRequest{Amount: amount, Description: in.Description})
}

func (s *BankService) Transfer(ctx context.Context, in TransferInput) (Result, error) {
	amount, err := ledger.ParseAmount("amount", in.Amount)
	if err != nil {
		return failed(err), err
	}
	return s.mutate(ctx, ledger.DebitRequest{
		Amount:      amount,
		Recipient:   in.Recipient,
		Description: in.Description,
	})
}

func (s *BankService) CreateSIP(ctx context.Context, in SIPInput) (Result, error) {
	amount, err := ledger.ParseAmount("monthlyAmount", in.MonthlyAmount)
	if err != nil {
		return failed(err), err
	}
	years, err := ledger.ParseYears("duration", in.Duration)
	if err != nil {
		return failed(err), err
	}
	return s.mutate(ctx, ledger.SIPRequest{
		FundName:      in.FundName,
		MonthlyAmount: amount,
		Duration:      years,
	})
}

func (s *BankService) CreateFD(ctx context.Context, in FDInput) (Result, error) {
	amount, err := ledger.ParseAmount("amount", in.Amount)
	if err != nil {
		return failed(err), err
	}
	tenure, err := ledger.ParseYears("tenure", in.Tenure)
	if err != nil {
		return failed(err), err
	}
	rate, err := ledger.ParseRate("interestRate", in.InterestRate)
	if err != nil {
		return failed(err), err
	}
	return s.mutate(ctx, ledger.FDRequest{Amount: amount, Tenure: tenure, InterestRate: rate})
}

func (s *BankService) CreateRD(ctx context.Context, in RDInput) (Result, error) {
	amount, err := ledger.ParseAmount("monthlyAmount", in.MonthlyAmount)
	if err != nil {
		return failed(err), err
	}
	tenure, err := ledger.ParseYears("tenure", in.Tenure)
	if err != nil {
		return failed(err), err
	}
	rate, err := ledger.ParseRate("interestRate", in.InterestRate)
	if err != nil {
		return failed(err), err
	}
	return s.mutate(ctx, ledger.RDRequest{MonthlyAmount: amount, Tenure: tenure, InterestRate: rate})
}

func (s *BankService) UpdateProfile(ctx context.Context, in ProfileInput) (Result, error) {
	return s.mutate(ctx, ledger.ProfileUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	})
}

package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/securebank/internal/currency"
	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/investment"
	"github.com/josh-kwaku/securebank/internal/ledger"
)

// amountDTO carries a decimal as a JSON number next to its display form.
type amountDTO struct {
	Value   json.Number `json:"value"`
	Display string      `json:"display"`
}

func toAmount(d decimal.Decimal, code string) amountDTO {
	return amountDTO{Value: json.Number(d.String()), Display: currency.Format(d, code)}
}

type transactionDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      amountDTO `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Balance     amountDTO `json:"balance"`
}

func toTransactionDTO(tx domain.Transaction, code string) transactionDTO {
	return transactionDTO{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      toAmount(tx.Amount, code),
		Description: tx.Description,
		Date:        tx.Date,
		Balance:     toAmount(tx.Balance, code),
	}
}

func toTransactionDTOs(txs []domain.Transaction, code string) []transactionDTO {
	out := make([]transactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionDTO(tx, code))
	}
	return out
}

type sipDTO struct {
	ID            string    `json:"id"`
	FundName      string    `json:"fund_name"`
	MonthlyAmount amountDTO `json:"monthly_amount"`
	StartDate     time.Time `json:"start_date"`
	Duration      int       `json:"duration"`
	CurrentValue  amountDTO `json:"current_value"`
}

type fdDTO struct {
	ID             string      `json:"id"`
	Amount         amountDTO   `json:"amount"`
	InterestRate   json.Number `json:"interest_rate"`
	Tenure         int         `json:"tenure"`
	StartDate      time.Time   `json:"start_date"`
	MaturityDate   time.Time   `json:"maturity_date"`
	MaturityAmount amountDTO   `json:"maturity_amount"`
}

type rdDTO struct {
	ID             string      `json:"id"`
	MonthlyAmount  amountDTO   `json:"monthly_amount"`
	InterestRate   json.Number `json:"interest_rate"`
	Tenure         int         `json:"tenure"`
	StartDate      time.Time   `json:"start_date"`
	MaturityDate   time.Time   `json:"maturity_date"`
	CurrentValue   amountDTO   `json:"current_value"`
	MaturityAmount *amountDTO  `json:"maturity_amount,omitempty"`
}

type investmentsDTO struct {
	SIP []sipDTO `json:"sip"`
	FD  []fdDTO  `json:"fd"`
	RD  []rdDTO  `json:"rd"`
}

type userDTO struct {
	ID            string           `json:"id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	DateOfBirth   string           `json:"date_of_birth"`
	AccountType   string           `json:"account_type"`
	AccountNumber string           `json:"account_number"`
	Balance       amountDTO        `json:"balance"`
	CreatedAt     string           `json:"created_at"`
	Transactions  []transactionDTO `json:"transactions"`
	Investments   investmentsDTO   `json:"investments"`
}

func toUserDTO(u domain.User, code string) userDTO {
	dto := userDTO{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		DateOfBirth:   u.DateOfBirth,
		AccountType:   u.AccountType,
		AccountNumber: u.AccountNumber,
		Balance:       toAmount(u.Balance, code),
		CreatedAt:     u.CreatedAt,
		Transactions:  toTransactionDTOs(u.Transactions, code),
		Investments: investmentsDTO{
			SIP: make([]sipDTO, 0, len(u.Investments.SIP)),
			FD:  make([]fdDTO, 0, len(u.Investments.FD)),
			RD:  make([]rdDTO, 0, len(u.Investments.RD)),
		},
	}
	for _, s := range u.Investments.SIP {
		dto.Investments.SIP = append(dto.Investments.SIP, sipDTO{
			ID:            s.ID,
			FundName:      s.FundName,
			MonthlyAmount: toAmount(s.MonthlyAmount, code),
			StartDate:     s.StartDate,
			Duration:      s.Duration,
			CurrentValue:  toAmount(s.CurrentValue, code),
		})
	}
	for _, f := range u.Investments.FD {
		dto.Investments.FD = append(dto.Investments.FD, fdDTO{
			ID:             f.ID,
			Amount:         toAmount(f.Amount, code),
			InterestRate:   json.Number(f.InterestRate.String()),
			Tenure:         f.Tenure,
			StartDate:      f.StartDate,
			MaturityDate:   f.MaturityDate,
			MaturityAmount: toAmount(f.MaturityAmount, code),
		})
	}
	for _, r := range u.Investments.RD {
		rd := rdDTO{
			ID:            r.ID,
			MonthlyAmount: toAmount(r.MonthlyAmount, code),
			InterestRate:  json.Number(r.InterestRate.String()),
			Tenure:        r.Tenure,
			StartDate:     r.StartDate,
			MaturityDate:  r.MaturityDate,
			CurrentValue:  toAmount(r.CurrentValue, code),
		}
		if r.MaturityAmount.Valid {
			m := toAmount(r.MaturityAmount.Decimal, code)
			rd.MaturityAmount = &m
		}
		dto.Investments.RD = append(dto.Investments.RD, rd)
	}
	return dto
}

type totalsDTO struct {
	Credits     amountDTO `json:"credits"`
	Debits      amountDTO `json:"debits"`
	CreditCount int       `json:"credit_count"`
	DebitCount  int       `json:"debit_count"`
}

type summaryDTO struct {
	Balance          amountDTO        `json:"balance"`
	TotalInvestments amountDTO        `json:"total_investments"`
	SIPCount         int              `json:"sip_count"`
	FDCount          int              `json:"fd_count"`
	RDCount          int              `json:"rd_count"`
	MonthlyNet       amountDTO        `json:"monthly_net"`
	MonthlyCount     int              `json:"monthly_count"`
	Totals           totalsDTO        `json:"totals"`
	Recent           []transactionDTO `json:"recent"`
}

func toSummaryDTO(s ledger.Summary, code string) summaryDTO {
	return summaryDTO{
		Balance:          toAmount(s.Balance, code),
		TotalInvestments: toAmount(s.TotalInvestments, code),
		SIPCount:         s.SIPCount,
		FDCount:          s.FDCount,
		RDCount:          s.RDCount,
		MonthlyNet:       toAmount(s.MonthlyNet, code),
		MonthlyCount:     s.MonthlyCount,
		Totals: totalsDTO{
			Credits:     toAmount(s.Totals.Credits, code),
			Debits:      toAmount(s.Totals.Debits, code),
			CreditCount: s.Totals.CreditCount,
			DebitCount:  s.Totals.DebitCount,
		},
		Recent: toTransactionDTOs(s.Recent, code),
	}
}

type quoteDTO struct {
	Product        string      `json:"product"`
	Principal      amountDTO   `json:"principal"`
	InterestRate   json.Number `json:"interest_rate"`
	Tenure         int         `json:"tenure"`
	MaturityDate   time.Time   `json:"maturity_date"`
	MaturityAmount amountDTO   `json:"maturity_amount"`
}

func toQuoteDTO(q investment.Quote, code string) quoteDTO {
	return quoteDTO{
		Product:        q.Product,
		Principal:      toAmount(q.Principal, code),
		InterestRate:   json.Number(q.InterestRate.String()),
		Tenure:         q.Tenure,
		MaturityDate:   q.MaturityDate,
		MaturityAmount: toAmount(q.MaturityAmount, code),
	}
}

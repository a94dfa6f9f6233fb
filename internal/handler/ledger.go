package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/investment"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/service"
)

type ledgerService interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	Credit(ctx context.Context, in service.CreditInput) (service.Result, error)
	Transfer(ctx context.Context, in service.TransferInput) (service.Result, error)
	CreateSIP(ctx context.Context, in service.SIPInput) (service.Result, error)
	CreateFD(ctx context.Context, in service.FDInput) (service.Result, error)
	CreateRD(ctx context.Context, in service.RDInput) (service.Result, error)
	UpdateProfile(ctx context.Context, in service.ProfileInput) (service.Result, error)
	Transactions(ctx context.Context, q service.TransactionQuery) ([]domain.Transaction, error)
	Summary(ctx context.Context) (ledger.Summary, error)
	Quote(ctx context.Context, in service.QuoteInput) (investment.Quote, error)
}

type LedgerHandler struct {
	bank     ledgerService
	currency string
}

func NewLedgerHandler(bank ledgerService, currencyCode string) *LedgerHandler {
	return &LedgerHandler{bank: bank, currency: currencyCode}
}

type creditRequest struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

type transferRequest struct {
	Amount      json.Number `json:"amount"`
	Recipient   string      `json:"recipient"`
	Description string      `json:"description"`
}

type sipRequest struct {
	FundName      string      `json:"fund_name"`
	MonthlyAmount json.Number `json:"monthly_amount"`
	Duration      json.Number `json:"duration"`
}

type fdRequest struct {
	Amount       json.Number `json:"amount"`
	Tenure       json.Number `json:"tenure"`
	InterestRate json.Number `json:"interest_rate"`
}

type rdRequest struct {
	MonthlyAmount json.Number `json:"monthly_amount"`
	Tenure        json.Number `json:"tenure"`
	InterestRate  json.Number `json:"interest_rate"`
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type mutationResponse struct {
	User        userDTO         `json:"user"`
	Transaction *transactionDTO `json:"transaction,omitempty"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return false
	}
	return true
}

// respondResult writes a mutation outcome. A persistence failure still
// returns the computed snapshot, marked uncommitted.
func respondResult(w http.ResponseWriter, r *http.Request, status int, res service.Result, err error, code string) {
	if err != nil {
		log := logging.FromContext(r.Context())
		switch res.Kind {
		case domain.KindPersistence, domain.KindInternal:
			log.Error("request failed", "kind", res.Kind, "error", err)
		default:
			log.Warn("request rejected", "kind", res.Kind, "error", err)
		}
		if res.Kind == domain.KindPersistence && res.User != nil {
			RespondAppError(w, ErrPersistenceFailed, map[string]any{
				"uncommitted": toUserDTO(*res.User, code),
			})
			return
		}
		RespondDomainError(w, err)
		return
	}

	out := mutationResponse{User: toUserDTO(*res.User, code)}
	if res.Transaction != nil {
		tx := toTransactionDTO(*res.Transaction, code)
		out.Transaction = &tx
	}
	RespondSuccess(w, status, out)
}

func (h *LedgerHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.bank.CurrentUser(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toUserDTO(u, h.currency))
}

func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req creditRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.Credit(r.Context(), service.CreditInput{
		Amount:      req.Amount.String(),
		Description: req.Description,
	})
	respondResult(w, r, http.StatusCreated, res, err, h.currency)
}

func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.Transfer(r.Context(), service.TransferInput{
		Amount:      req.Amount.String(),
		Recipient:   req.Recipient,
		Description: req.Description,
	})
	respondResult(w, r, http.StatusCreated, res, err, h.currency)
}

func (h *LedgerHandler) CreateSIP(w http.ResponseWriter, r *http.Request) {
	var req sipRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.CreateSIP(r.Context(), service.SIPInput{
		FundName:      req.FundName,
		MonthlyAmount: req.MonthlyAmount.String(),
		Duration:      req.Duration.String(),
	})
	respondResult(w, r, http.StatusCreated, res, err, h.currency)
}

func (h *LedgerHandler) CreateFD(w http.ResponseWriter, r *http.Request) {
	var req fdRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.CreateFD(r.Context(), service.FDInput{
		Amount:       req.Amount.String(),
		Tenure:       req.Tenure.String(),
		InterestRate: req.InterestRate.String(),
	})
	respondResult(w, r, http.StatusCreated, res, err, h.currency)
}

func (h *LedgerHandler) CreateRD(w http.ResponseWriter, r *http.Request) {
	var req rdRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.CreateRD(r.Context(), service.RDInput{
		MonthlyAmount: req.MonthlyAmount.String(),
		Tenure:        req.Tenure.String(),
		InterestRate:  req.InterestRate.String(),
	})
	respondResult(w, r, http.StatusCreated, res, err, h.currency)
}

func (h *LedgerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.bank.UpdateProfile(r.Context(), service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	respondResult(w, r, http.StatusOK, res, err, h.currency)
}

func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := h.bank.Transactions(r.Context(), service.TransactionQuery{
		Type:   q.Get("type"),
		Search: q.Get("q"),
		Sort:   q.Get("sort"),
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toTransactionDTOs(txs, h.currency))
}

func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.bank.Summary(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toSummaryDTO(s, h.currency))
}

func (h *LedgerHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote, err := h.bank.Quote(r.Context(), service.QuoteInput{
		Product:      q.Get("product"),
		Amount:       q.Get("amount"),
		Tenure:       q.Get("tenure"),
		InterestRate: q.Get("rate"),
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toQuoteDTO(quote, h.currency))
}

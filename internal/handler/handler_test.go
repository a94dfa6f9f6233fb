package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/domain"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
	"github.com/josh-kwaku/securebank/internal/session"
)

const testCurrency = "INR"

type testEnv struct {
	bank     *service.BankService
	sessions *session.Manager
	ledger   *LedgerHandler
	session  *SessionHandler
	backup   *BackupHandler
	users    *DirectoryHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := repository.NewUserRepository(repository.NewMemoryStore())
	bank := service.NewBankService(repo, ledger.NewEngine(),
		service.WithInitialBalance(decimal.NewFromInt(1000)),
	)
	sessions := session.NewManager("handler-test-secret", time.Hour)
	return &testEnv{
		bank:     bank,
		sessions: sessions,
		ledger:   NewLedgerHandler(bank, testCurrency),
		session:  NewSessionHandler(bank, sessions, testCurrency, false),
		backup:   NewBackupHandler(bank, testCurrency),
		users:    NewDirectoryHandler(bank, testCurrency),
	}
}

func do(h http.HandlerFunc, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, data any) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), rr.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return APIResponse{Success: raw.Success, Error: raw.Error}
}

func (e *testEnv) openAccount(t *testing.T, email string) *http.Cookie {
	t.Helper()
	body := fmt.Sprintf(`{"first_name":"Ada","last_name":"Lovelace","email":%q,"account_type":"savings"}`, email)
	rr := do(e.session.OpenAccount, http.MethodPost, "/api/v1/accounts", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.NewValidationError("amount", "must be positive"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"insufficient funds", fmt.Errorf("Debit: %w", domain.ErrInsufficientFunds), http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"no current user", fmt.Errorf("Credit: %w", domain.ErrNoCurrentUser), http.StatusUnauthorized, "NOT_SIGNED_IN"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "RESOURCE_NOT_FOUND"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
		{"malformed snapshot", domain.NewMalformedSnapshotError("currentUser.balance", "must be a number"), http.StatusBadRequest, "MALFORMED_SNAPSHOT"},
		{"persistence", fmt.Errorf("%w: %w", domain.ErrPersistence, errors.New("disk full")), http.StatusServiceUnavailable, "PERSISTENCE_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondDomainError(rr, tc.err)

			assert.Equal(t, tc.wantStatus, rr.Code)
			resp := decodeResponse(t, rr, nil)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

func TestOpenAccountSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.session.OpenAccount, http.MethodPost, "/api/v1/accounts",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var out sessionResponse
	resp := decodeResponse(t, rr, &out)
	assert.True(t, resp.Success)
	assert.Equal(t, "ada@example.com", out.User.Email)
	assert.Equal(t, json.Number("1000"), out.User.Balance.Value)
	require.Len(t, out.User.Transactions, 1)
	assert.Equal(t, service.InitialDepositDescription, out.User.Transactions[0].Description)

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)

	userID, err := env.sessions.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
}

func TestOpenAccountRejects(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"invalid json", `{`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing first name", `{"last_name":"L","email":"a@example.com"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad email", `{"first_name":"A","last_name":"L","email":"nope"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad account type", `{"first_name":"A","last_name":"L","email":"a@example.com","account_type":"gold"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			rr := do(env.session.OpenAccount, http.MethodPost, "/api/v1/accounts", tc.body)

			assert.Equal(t, tc.wantStatus, rr.Code)
			resp := decodeResponse(t, rr, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Empty(t, rr.Result().Cookies())
		})
	}
}

func TestOpenAccountDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")

	rr := do(env.session.OpenAccount, http.MethodPost, "/api/v1/accounts",
		`{"first_name":"Ada","last_name":"Again","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLedgerEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")

	rr := do(env.ledger.Credit, http.MethodPost, "/api/v1/credit", `{"amount":500.25,"description":"Salary"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var credited mutationResponse
	decodeResponse(t, rr, &credited)
	assert.Equal(t, json.Number("1500.25"), credited.User.Balance.Value)
	require.NotNil(t, credited.Transaction)
	assert.Equal(t, "credit", credited.Transaction.Type)
	assert.Equal(t, "Salary", credited.Transaction.Description)

	rr = do(env.ledger.Transfer, http.MethodPost, "/api/v1/transfers", `{"amount":99999,"recipient":"Bob"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(env.ledger.Transfer, http.MethodPost, "/api/v1/transfers", `{"amount":200,"recipient":"Bob"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var moved mutationResponse
	decodeResponse(t, rr, &moved)
	assert.Equal(t, "Transfer to Bob", moved.Transaction.Description)
	assert.Equal(t, json.Number("1300.25"), moved.User.Balance.Value)

	rr = do(env.ledger.CreateFD, http.MethodPost, "/api/v1/investments/fd", `{"amount":1000,"tenure":3,"interest_rate":6.5}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var fd mutationResponse
	decodeResponse(t, rr, &fd)
	require.Len(t, fd.User.Investments.FD, 1)
	assert.Equal(t, json.Number("1207.949625"), fd.User.Investments.FD[0].MaturityAmount.Value)

	rr = do(env.ledger.CreateSIP, http.MethodPost, "/api/v1/investments/sip", `{"fund_name":"Moon Fund","monthly_amount":100,"duration":5}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(env.ledger.CreateRD, http.MethodPost, "/api/v1/investments/rd", `{"monthly_amount":100,"tenure":1}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(env.ledger.Transactions, http.MethodGet, "/api/v1/transactions?type=debit&sort=oldest", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var txs []transactionDTO
	decodeResponse(t, rr, &txs)
	require.Len(t, txs, 3)
	assert.Equal(t, json.Number("200"), txs[0].Amount.Value)
	for _, tx := range txs {
		assert.Equal(t, "debit", tx.Type)
	}

	rr = do(env.ledger.Summary, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var summary summaryDTO
	decodeResponse(t, rr, &summary)
	assert.Equal(t, json.Number("200.25"), summary.Balance.Value)
	assert.Equal(t, 1, summary.FDCount)
	assert.Equal(t, 1, summary.RDCount)
	assert.Equal(t, 2, summary.Totals.CreditCount)

	rr = do(env.ledger.Me, http.MethodGet, "/api/v1/me", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var me userDTO
	decodeResponse(t, rr, &me)
	assert.Len(t, me.Transactions, 5)
}

func TestLedgerEndpointsWithoutUser(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.ledger.Credit, http.MethodPost, "/api/v1/credit", `{"amount":5}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(env.ledger.Me, http.MethodGet, "/api/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreditRejectsQuotedGarbage(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")

	rr := do(env.ledger.Credit, http.MethodPost, "/api/v1/credit", `{"amount":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")

	rr := do(env.ledger.UpdateProfile, http.MethodPatch, "/api/v1/me",
		`{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com","phone":"555-0100"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out mutationResponse
	decodeResponse(t, rr, &out)
	assert.Equal(t, "Grace", out.User.FirstName)
	assert.Nil(t, out.Transaction)
}

func TestQuote(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.ledger.Quote, http.MethodGet, "/api/v1/catalog/quote?product=fd&amount=1000&tenure=3&rate=6.5", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var q quoteDTO
	decodeResponse(t, rr, &q)
	assert.Equal(t, json.Number("1207.949625"), q.MaturityAmount.Value)
	assert.Equal(t, "₹1,207.95", q.MaturityAmount.Display)

	rr = do(env.ledger.Quote, http.MethodGet, "/api/v1/catalog/quote?product=bond&amount=1000&tenure=3", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCatalog(t *testing.T) {
	rr := do(Catalog, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var c catalogDTO
	decodeResponse(t, rr, &c)
	assert.NotEmpty(t, c.Funds)
	assert.NotEmpty(t, c.FDRates)
	assert.Equal(t, json.Number("500"), c.MinSIPMonthly)
}

func TestSessionInfo(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.session.Info, http.MethodGet, "/api/v1/session", "")
	var none sessionInfoResponse
	decodeResponse(t, rr, &none)
	assert.False(t, none.Active)

	cookie := env.openAccount(t, "ada@example.com")
	rr = do(env.session.Info, http.MethodGet, "/api/v1/session", "", cookie)
	var info sessionInfoResponse
	decodeResponse(t, rr, &info)
	assert.True(t, info.Active)
	assert.True(t, info.IsValid)
	require.NotNil(t, info.User)
	assert.Equal(t, info.UserID, info.User.ID)

	rr = do(env.session.Info, http.MethodGet, "/api/v1/session", "", &http.Cookie{Name: session.CookieName, Value: "garbage"})
	var bad sessionInfoResponse
	decodeResponse(t, rr, &bad)
	assert.False(t, bad.Active)
}

func TestSignInAndOut(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")
	env.openAccount(t, "grace@example.com")

	rr := do(env.session.SignIn, http.MethodPost, "/api/v1/session", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	u, err := env.bank.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	rr = do(env.session.SignIn, http.MethodPost, "/api/v1/session", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(env.session.SignIn, http.MethodPost, "/api/v1/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(env.session.SignOut, http.MethodDelete, "/api/v1/session", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, err = env.bank.CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCurrentUser)
	require.NotEmpty(t, rr.Result().Cookies())
	assert.Equal(t, -1, rr.Result().Cookies()[0].MaxAge)
}

func TestBackupRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")
	do(env.ledger.Credit, http.MethodPost, "/api/v1/credit", `{"amount":42}`)

	rr := do(env.backup.Export, http.MethodGet, "/api/v1/backup", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "securebank-backup-")
	exported := rr.Body.Bytes()

	other := newTestEnv(t)
	rr = do(other.backup.Import, http.MethodPost, "/api/v1/backup", string(exported))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out mutationResponse
	decodeResponse(t, rr, &out)
	assert.Equal(t, json.Number("1042"), out.User.Balance.Value)

	rr = do(other.users.List, http.MethodGet, "/api/v1/users", "")
	var dir []directoryEntryDTO
	decodeResponse(t, rr, &dir)
	require.Len(t, dir, 1)
	assert.Equal(t, "Ada Lovelace", dir[0].Name)
}

func TestImportRejects(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.backup.Import, http.MethodPost, "/api/v1/backup", `{"currentUser":{"id":1}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MALFORMED_SNAPSHOT", resp.Error.Code)

	big := strings.Repeat(" ", maxBackupBytes+1)
	rr = do(env.backup.Import, http.MethodPost, "/api/v1/backup", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestExportWithoutUser(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.backup.Export, http.MethodGet, "/api/v1/backup", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestClearAllAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.openAccount(t, "ada@example.com")

	rr := do(env.backup.Stats, http.MethodGet, "/api/v1/storage/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats statsResponse
	decodeResponse(t, rr, &stats)
	assert.Equal(t, 1, stats.UserCount)
	assert.NotEqual(t, json.Number("0"), stats.TotalKB)

	rr = do(env.backup.ClearAll, http.MethodDelete, "/api/v1/data", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(env.backup.Stats, http.MethodGet, "/api/v1/storage/stats", "")
	decodeResponse(t, rr, &stats)
	assert.Equal(t, 0, stats.UserCount)
	assert.Equal(t, json.Number("0"), stats.TotalKB)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		store      repository.Pinger
		wantStatus int
	}{
		{"memory backend", nil, http.StatusOK},
		{"store up", stubPinger{}, http.StatusOK},
		{"store down", stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.store, "test")
			rr := do(h.Readiness, http.MethodGet, "/ready", "")
			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

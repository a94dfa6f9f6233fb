package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/middleware"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
	"github.com/josh-kwaku/securebank/internal/session"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	repo := repository.NewUserRepository(repository.NewMemoryStore())
	bank := service.NewBankService(repo, ledger.NewEngine())
	r := NewRouter(Options{
		Bank:         bank,
		Sessions:     session.NewManager("router-test-secret", time.Hour),
		Backend:      "memory",
		Currency:     "INR",
		AllowOrigins: []string{"http://localhost:3000"},
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func call(t *testing.T, c *http.Client, method, url, body string) (*http.Response, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func TestEndToEnd(t *testing.T) {
	srv, c := newTestServer(t)
	api := srv.URL + "/api/v1"

	resp, _ := call(t, c, http.MethodGet, api+"/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, c, http.MethodPost, api+"/accounts",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, env := call(t, c, http.MethodGet, api+"/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info struct {
		Active  bool `json:"active"`
		IsValid bool `json:"is_valid"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.True(t, info.Active, "cookie jar should carry the session")
	assert.True(t, info.IsValid)

	resp, _ = call(t, c, http.MethodPost, api+"/credit", `{"amount":5000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, c, http.MethodPost, api+"/investments/sip",
		`{"fund_name":"Axis Bluechip Fund","monthly_amount":500,"duration":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = call(t, c, http.MethodGet, api+"/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Balance struct {
			Value json.Number `json:"value"`
		} `json:"balance"`
		SIPCount int `json:"sip_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, json.Number("4500"), summary.Balance.Value)
	assert.Equal(t, 1, summary.SIPCount)

	resp, _ = call(t, c, http.MethodGet, api+"/backup", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	resp, _ = call(t, c, http.MethodDelete, api+"/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = call(t, c, http.MethodGet, api+"/session", "")
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.False(t, info.Active)
}

func TestRouting(t *testing.T) {
	srv, c := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"readiness on memory", http.MethodGet, "/ready", http.StatusOK},
		{"docs", http.MethodGet, "/docs", http.StatusOK},
		{"openapi", http.MethodGet, "/docs/openapi.yaml", http.StatusOK},
		{"catalog", http.MethodGet, "/api/v1/catalog", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/v1/credit", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := call(t, c, tc.method, srv.URL+tc.path, "")
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, c := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/credit", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

// Package server assembles the HTTP surface of the bank.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/josh-kwaku/securebank/internal/handler"
	"github.com/josh-kwaku/securebank/internal/middleware"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
	"github.com/josh-kwaku/securebank/internal/session"
)

type Options struct {
	Bank          *service.BankService
	Sessions      *session.Manager
	Store         repository.Pinger
	Backend       string
	Currency      string
	AllowOrigins  []string
	SecureCookies bool
}

func NewRouter(opts Options) *chi.Mux {
	ledgerHandler := handler.NewLedgerHandler(opts.Bank, opts.Currency)
	sessionHandler := handler.NewSessionHandler(opts.Bank, opts.Sessions, opts.Currency, opts.SecureCookies)
	backupHandler := handler.NewBackupHandler(opts.Bank, opts.Currency)
	directoryHandler := handler.NewDirectoryHandler(opts.Bank, opts.Currency)
	healthHandler := handler.NewHealthHandler(opts.Store, opts.Backend)

	r := chi.NewRouter()
	r.Use(middleware.Tracing)
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(middleware.Session(opts.Sessions))
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", healthHandler.Liveness)
	r.Get("/ready", healthHandler.Readiness)
	r.Get("/docs", handler.ServeDocs())
	r.Get("/docs/openapi.yaml", handler.ServeSpec(handler.OpenAPISpec))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts", sessionHandler.OpenAccount)

		r.Get("/session", sessionHandler.Info)
		r.Post("/session", sessionHandler.SignIn)
		r.Delete("/session", sessionHandler.SignOut)

		r.Get("/me", ledgerHandler.Me)
		r.Patch("/me", ledgerHandler.UpdateProfile)
		r.Get("/transactions", ledgerHandler.Transactions)
		r.Get("/summary", ledgerHandler.Summary)
		r.Post("/credit", ledgerHandler.Credit)
		r.Post("/transfers", ledgerHandler.Transfer)

		r.Route("/investments", func(r chi.Router) {
			r.Post("/sip", ledgerHandler.CreateSIP)
			r.Post("/fd", ledgerHandler.CreateFD)
			r.Post("/rd", ledgerHandler.CreateRD)
		})

		r.Get("/catalog", handler.Catalog)
		r.Get("/catalog/quote", ledgerHandler.Quote)

		r.Get("/backup", backupHandler.Export)
		r.Post("/backup", backupHandler.Import)
		r.Delete("/data", backupHandler.ClearAll)
		r.Get("/storage/stats", backupHandler.Stats)

		r.Get("/users", directoryHandler.List)
		r.Delete("/users/{id}", directoryHandler.Remove)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondAppError(w, handler.ErrResourceNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondAppError(w, handler.ErrMethodNotAllowed, nil)
	})

	return r
}

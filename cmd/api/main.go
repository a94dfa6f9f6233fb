package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/securebank/internal/config"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/server"
	"github.com/josh-kwaku/securebank/internal/service"
	"github.com/josh-kwaku/securebank/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("securebank-api", cfg.LogLevel, cfg.AppEnv, os.Stdout)

	ctx := context.Background()
	store, closeStore, err := repository.Open(ctx, cfg.StoreConfig)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var pinger repository.Pinger
	if p, ok := store.(repository.Pinger); ok {
		pinger = p
	}

	bank := service.NewBankService(
		repository.NewUserRepository(store),
		ledger.NewEngine(),
		service.WithInitialBalance(cfg.InitialBalance),
	)

	router := server.NewRouter(server.Options{
		Bank:          bank,
		Sessions:      session.NewManager(cfg.SessionSecret, cfg.SessionTTL),
		Store:         pinger,
		Backend:       cfg.StoreBackend,
		Currency:      cfg.Currency,
		AllowOrigins:  cfg.CORSAllowedOrigins,
		SecureCookies: cfg.SecureCookies,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "backend", cfg.StoreBackend, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

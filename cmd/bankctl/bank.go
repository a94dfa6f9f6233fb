package main

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/securebank/internal/config"
	"github.com/josh-kwaku/securebank/internal/ledger"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/service"
)

// openBank wires a BankService over the store named by the environment.
func openBank(ctx context.Context) (*service.BankService, func(), error) {
	cfg, err := config.LoadStore()
	if err != nil {
		return nil, nil, fmt.Errorf("openBank: %w", err)
	}
	store, closeFn, err := repository.Open(ctx, *cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("openBank: %w", err)
	}
	return service.NewBankService(repository.NewUserRepository(store), ledger.NewEngine()), closeFn, nil
}

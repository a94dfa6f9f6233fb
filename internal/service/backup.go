package service

import (
	"context"
	"fmt"

	"github.com/josh-kwaku/securebank/internal/logging"
	"github.com/josh-kwaku/securebank/internal/repository"
	"github.com/josh-kwaku/securebank/internal/snapshot"
)

// Export bundles the current user and the directory. It also returns the
// suggested file name for the download.
func (s *BankService) Export(ctx context.Context) ([]byte, string, error) {
	current, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("Export: %w", err)
	}
	all, err := s.users.AllUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("Export: %w", err)
	}

	now := s.now()
	data, err := snapshot.Export(snapshot.NewBundle(current, all, now))
	if err != nil {
		return nil, "", fmt.Errorf("Export: %w", err)
	}
	return data, snapshot.BackupFilename(now), nil
}

// Import validates the whole backup before writing anything, then replaces
// the current user and the directory.
func (s *BankService) Import(ctx context.Context, data []byte) (Result, error) {
	b, err := snapshot.ParseBundle(data)
	if err != nil {
		return failed(err), fmt.Errorf("Import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.Restore(ctx, b); err != nil {
		return failed(err), fmt.Errorf("Import: %w", err)
	}

	logging.FromContext(ctx).Info("backup imported",
		"user_id", b.CurrentUser.ID,
		"users", len(b.AllUsers),
		"exported_at", b.Timestamp,
	)
	return succeeded(b.CurrentUser, nil), nil
}

func (s *BankService) ClearAll(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.ClearAll(ctx); err != nil {
		return failed(err), fmt.Errorf("ClearAll: %w", err)
	}
	logging.FromContext(ctx).Warn("all data cleared")
	return Result{Success: true}, nil
}

func (s *BankService) Stats(ctx context.Context) (repository.Stats, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return repository.Stats{}, fmt.Errorf("Stats: %w", err)
	}
	return stats, nil
}

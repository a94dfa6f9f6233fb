package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/securebank/internal/config"
)

func TestOpenMemory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), config.StoreConfig{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	defer closeFn()

	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{StoreBackend: "sqlite"})
	assert.Error(t, err)
}

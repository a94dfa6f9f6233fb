package repository

import "context"

const (
	KeyCurrentUser = "currentUser"
	KeyUsers       = "bankUsers"
)

// Store is a flat string key-value store. A missing key reports ok == false
// and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Package idgen issues record identifiers that sort in creation order.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source hands out IDs for a clock reading.
type Source interface {
	NewID(t time.Time) string
}

// ULID generates lexicographically sortable IDs. Within the same millisecond
// the monotonic entropy increments, so IDs drawn in sequence never collide
// and keep their draw order.
type ULID struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULID() *ULID {
	return &ULID{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULID) NewID(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

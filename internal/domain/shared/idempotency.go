package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultIdempotencyTTL is how long an accepted key blocks replays
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers request keys that were already accepted.
// Implementations must make MarkProcessed atomic across processes sharing the store.
type IdempotencyStore interface {
	// MarkProcessed claims key for ttl. It reports false when the key is already claimed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Release frees a claim so a failed request can be retried
	Release(ctx context.Context, key string) error
	Close() error
}

// ScopedIdempotencyKey namespaces a client key by operation and account,
// so two customers sending the same Idempotency-Key never collide.
func ScopedIdempotencyKey(operation string, accountID uuid.UUID, clientKey string) string {
	return operation + ":" + accountID.String() + ":" + clientKey
}

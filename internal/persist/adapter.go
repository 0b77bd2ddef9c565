package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lmarquez/storefront-backend/pkg/logger"
)

// KV is the durable key-value surface the adapter writes through.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Adapter bridges in-memory store state and durable key-value storage. It is
// stateless: one Load at store initialization, one Save per committed
// mutation. Stored content is untrusted; Load never propagates a corrupt or
// partial structure.
type Adapter[T any] struct {
	kv   KV
	ttl  time.Duration
	logg *logger.Logger
}

// NewAdapter builds an adapter over the provided key-value store.
func NewAdapter[T any](kv KV, ttl time.Duration, logg *logger.Logger) (*Adapter[T], error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value store is required")
	}
	return &Adapter[T]{kv: kv, ttl: ttl, logg: logg}, nil
}

// Load reads and decodes the items stored at key. A missing key, unreadable
// store, or undecodable payload all yield the canonical empty state.
func (a *Adapter[T]) Load(ctx context.Context, key string) []T {
	raw, err := a.kv.Get(ctx, key)
	if err != nil || raw == "" {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if a.logg != nil {
			a.logg.Warn(a.logg.WithField(ctx, "key", key), "discarding undecodable persisted state")
		}
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Save encodes the raw items (never derived aggregates) and writes them at
// key. The caller decides whether a failure matters; committed in-memory
// state must not be rolled back on a failed write.
func (a *Adapter[T]) Save(ctx context.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := a.kv.Set(ctx, key, string(encoded), a.ttl); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

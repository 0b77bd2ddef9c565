package wishlist

import (
	"context"
	"fmt"
	"sync"

	"github.com/lmarquez/storefront-backend/internal/catalog"
	"github.com/lmarquez/storefront-backend/internal/persist"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

// Store owns one wishlist state per session, mirroring the cart store's
// contract: in-memory state is authoritative for the session, the adapter is
// the durability layer, written best-effort after each mutation.
type Store struct {
	mu      sync.Mutex
	states  map[string][]catalog.Product
	adapter *persist.Adapter[catalog.Product]
	keyFor  func(sessionID string) string
	logg    *logger.Logger
}

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Adapter *persist.Adapter[catalog.Product]
	KeyFor  func(sessionID string) string
	Logger  *logger.Logger
}

// NewStore builds a session-scoped wishlist store; missing dependencies fail
// loudly here.
func NewStore(params StoreParams) (*Store, error) {
	if params.Adapter == nil {
		return nil, fmt.Errorf("persistence adapter is required")
	}
	if params.KeyFor == nil {
		return nil, fmt.Errorf("key builder is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{
		states:  make(map[string][]catalog.Product),
		adapter: params.Adapter,
		keyFor:  params.KeyFor,
		logg:    params.Logger,
	}, nil
}

// State returns the session's wishlist, restoring persisted items on first
// touch.
func (s *Store) State(ctx context.Context, sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: cloneItems(s.loadLocked(ctx, sessionID))}
}

// Dispatch applies one action and returns the new state; a failed
// persistence write is logged and swallowed.
func (s *Store) Dispatch(ctx context.Context, sessionID string, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := State{Items: s.loadLocked(ctx, sessionID)}
	next := Reduce(current, action)
	s.states[sessionID] = next.Items

	if err := s.adapter.Save(ctx, s.keyFor(sessionID), next.Items); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"session_id": sessionID,
			"action":     string(action.Type),
		})
		s.logg.Warn(ctx, "wishlist state write failed; in-memory state kept")
	}

	return State{Items: cloneItems(next.Items)}
}

func (s *Store) loadLocked(ctx context.Context, sessionID string) []catalog.Product {
	if items, ok := s.states[sessionID]; ok {
		return items
	}
	items := s.adapter.Load(ctx, s.keyFor(sessionID))
	s.states[sessionID] = items
	return items
}

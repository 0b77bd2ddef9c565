package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/lmarquez/storefront-backend/internal/persist"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

// Store owns one cart state per session. The in-memory state is the source
// of truth for the session; the persistence adapter is a durability layer of
// last resort, read once on first touch of a session and written after every
// committed mutation.
type Store struct {
	mu          sync.Mutex
	states      map[string][]LineItem
	adapter     *persist.Adapter[LineItem]
	keyFor      func(sessionID string) string
	maxQuantity int
	logg        *logger.Logger
}

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	Adapter     *persist.Adapter[LineItem]
	KeyFor      func(sessionID string) string
	MaxQuantity int
	Logger      *logger.Logger
}

// NewStore builds a session-scoped cart store. Missing dependencies are a
// wiring defect and fail loudly here rather than at dispatch time.
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
		states:      make(map[string][]LineItem),
		adapter:     params.Adapter,
		keyFor:      params.KeyFor,
		maxQuantity: params.MaxQuantity,
		logg:        params.Logger,
	}, nil
}

// State returns the current cart state for the session, restoring persisted
// items on the session's first touch.
func (s *Store) State(ctx context.Context, sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: cloneItems(s.loadLocked(ctx, sessionID))}
}

// Dispatch applies one action to the session's cart and returns the new
// state. The state transition always succeeds; persistence is best-effort
// and a failed write never rolls the transition back.
func (s *Store) Dispatch(ctx context.Context, sessionID string, action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := State{Items: s.loadLocked(ctx, sessionID)}
	next := Reduce(current, action, s.maxQuantity)
	s.states[sessionID] = next.Items

	if err := s.adapter.Save(ctx, s.keyFor(sessionID), next.Items); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"session_id": sessionID,
			"action":     string(action.Type),
		})
		s.logg.Warn(ctx, "cart state write failed; in-memory state kept")
	}

	return State{Items: cloneItems(next.Items)}
}

func (s *Store) loadLocked(ctx context.Context, sessionID string) []LineItem {
	if items, ok := s.states[sessionID]; ok {
		return items
	}
	items := s.adapter.Load(ctx, s.keyFor(sessionID))
	s.states[sessionID] = items
	return items
}

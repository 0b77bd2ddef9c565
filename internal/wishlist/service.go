package wishlist

import (
	"context"

	"github.com/lmarquez/storefront-backend/internal/catalog"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
)

type productLoader interface {
	GetByID(ctx context.Context, id int64) (*catalog.Product, error)
}

// Summary is the read-only wishlist view handed to the presentation layer.
type Summary struct {
	Items      []catalog.Product `json:"items"`
	TotalItems int               `json:"totalItems"`
}

// Service exposes the wishlist command set to the API layer.
type Service interface {
	Get(ctx context.Context, sessionID string) (Summary, error)
	AddProduct(ctx context.Context, sessionID string, productID int64) (Summary, error)
	RemoveProduct(ctx context.Context, sessionID string, productID int64) (Summary, error)
	Toggle(ctx context.Context, sessionID string, productID int64) (Summary, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Store    *Store
	Products productLoader
}

type service struct {
	store    *Store
	products productLoader
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "wishlist store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader is required")
	}
	return &service{store: params.Store, products: params.Products}, nil
}

// Get returns the session's wishlist.
func (s *service) Get(ctx context.Context, sessionID string) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	return summarize(s.store.State(ctx, sessionID)), nil
}

// AddProduct saves the catalog record; adding an already-saved product is a
// no-op.
func (s *service) AddProduct(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Summary{}, err
	}

	return summarize(s.store.Dispatch(ctx, sessionID, Add(*product))), nil
}

// RemoveProduct drops the saved entry; a non-present id is a no-op.
func (s *service) RemoveProduct(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	return summarize(s.store.Dispatch(ctx, sessionID, Remove(productID))), nil
}

// Toggle flips the product's saved state in one step.
func (s *service) Toggle(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Summary{}, err
	}

	return summarize(s.store.Dispatch(ctx, sessionID, Toggle(*product))), nil
}

func summarize(state State) Summary {
	return Summary{Items: state.Items, TotalItems: len(state.Items)}
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "session context missing")
	}
	return nil
}

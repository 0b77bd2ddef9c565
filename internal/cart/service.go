package cart

import (
	"context"

	"github.com/lmarquez/storefront-backend/internal/catalog"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
)

type productLoader interface {
	GetByID(ctx context.Context, id int64) (*catalog.Product, error)
}

// Summary is the read-only cart view handed to the presentation layer:
// the raw items plus aggregates derived from them at this instant.
type Summary struct {
	Items        []LineItem `json:"items"`
	TotalItems   int        `json:"totalItems"`
	Subtotal     float64    `json:"subtotal"`
	TotalWithTax float64    `json:"totalWithTax"`
}

// Service exposes the cart command set to the API layer.
type Service interface {
	Get(ctx context.Context, sessionID string) (Summary, error)
	AddProduct(ctx context.Context, sessionID string, productID int64) (Summary, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error)
	RemoveProduct(ctx context.Context, sessionID string, productID int64) (Summary, error)
	Clear(ctx context.Context, sessionID string) (Summary, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store    *Store
	Products productLoader
	TaxRate  float64
}

type service struct {
	store    *Store
	products productLoader
	taxRate  float64
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader is required")
	}
	if params.TaxRate < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tax rate must be non-negative")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		taxRate:  params.TaxRate,
	}, nil
}

// Get returns the session's cart with freshly derived aggregates.
func (s *service) Get(ctx context.Context, sessionID string) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	return s.summarize(s.store.State(ctx, sessionID)), nil
}

// AddProduct snapshots the catalog record and dispatches ADD_ITEM.
func (s *service) AddProduct(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Summary{}, err
	}

	return s.summarize(s.store.Dispatch(ctx, sessionID, AddItem(*product))), nil
}

// SetQuantity replaces a line item's quantity. Values below 1 are rejected
// at this boundary; removal must be requested explicitly.
func (s *service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	if quantity < 1 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	return s.summarize(s.store.Dispatch(ctx, sessionID, SetQuantity(productID, quantity))), nil
}

// RemoveProduct deletes the line item; a non-present id is a no-op.
func (s *service) RemoveProduct(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	return s.summarize(s.store.Dispatch(ctx, sessionID, RemoveItem(productID))), nil
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) (Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return Summary{}, err
	}
	return s.summarize(s.store.Dispatch(ctx, sessionID, Clear())), nil
}

func (s *service) summarize(state State) Summary {
	return Summary{
		Items:        state.Items,
		TotalItems:   state.TotalItems(),
		Subtotal:     state.Subtotal(),
		TotalWithTax: state.TotalWithTax(s.taxRate),
	}
}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "session context missing")
	}
	return nil
}

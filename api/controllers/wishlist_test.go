package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lmarquez/storefront-backend/internal/wishlist"
)

type testWishlistService struct {
	getFn    func(ctx context.Context, sessionID string) (wishlist.Summary, error)
	addFn    func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error)
	removeFn func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error)
	toggleFn func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error)
}

func (s *testWishlistService) Get(ctx context.Context, sessionID string) (wishlist.Summary, error) {
	if s.getFn != nil {
		return s.getFn(ctx, sessionID)
	}
	return wishlist.Summary{}, nil
}

func (s *testWishlistService) AddProduct(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
	if s.addFn != nil {
		return s.addFn(ctx, sessionID, productID)
	}
	return wishlist.Summary{}, nil
}

func (s *testWishlistService) RemoveProduct(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
	if s.removeFn != nil {
		return s.removeFn(ctx, sessionID, productID)
	}
	return wishlist.Summary{}, nil
}

func (s *testWishlistService) Toggle(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
	if s.toggleFn != nil {
		return s.toggleFn(ctx, sessionID, productID)
	}
	return wishlist.Summary{}, nil
}

func TestWishlistToggleItemSuccess(t *testing.T) {
	svc := &testWishlistService{
		toggleFn: func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
			if sessionID != "sess-1" || productID != 9 {
				t.Fatalf("unexpected args session=%s product=%d", sessionID, productID)
			}
			return wishlist.Summary{TotalItems: 1}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items/9/toggle", nil)
	req = withSession(req, "sess-1")
	req = addRouteParam(req, "productId", "9")
	resp := httptest.NewRecorder()

	WishlistToggleItem(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data wishlist.Summary `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.TotalItems != 1 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestWishlistToggleItemRejectsBadPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items/x/toggle", nil)
	req = withSession(req, "sess-1")
	req = addRouteParam(req, "productId", "x")
	resp := httptest.NewRecorder()

	WishlistToggleItem(&testWishlistService{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWishlistAddItemSuccess(t *testing.T) {
	called := false
	svc := &testWishlistService{
		addFn: func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
			called = true
			if productID != 4 {
				t.Fatalf("unexpected product %d", productID)
			}
			return wishlist.Summary{TotalItems: 1}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(`{"product_id":4}`))
	req = withSession(req, "sess-1")
	resp := httptest.NewRecorder()

	WishlistAddItem(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestWishlistAddItemRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(`{"product_id":4,"surprise":true}`))
	req = withSession(req, "sess-1")
	resp := httptest.NewRecorder()

	WishlistAddItem(&testWishlistService{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWishlistRemoveItemSuccess(t *testing.T) {
	svc := &testWishlistService{
		removeFn: func(ctx context.Context, sessionID string, productID int64) (wishlist.Summary, error) {
			if productID != 4 {
				t.Fatalf("unexpected product %d", productID)
			}
			return wishlist.Summary{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wishlist/items/4", nil)
	req = withSession(req, "sess-1")
	req = addRouteParam(req, "productId", "4")
	resp := httptest.NewRecorder()

	WishlistRemoveItem(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

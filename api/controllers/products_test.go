package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lmarquez/storefront-backend/internal/catalog"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
)

type testCatalogBrowser struct {
	listFn     func(ctx context.Context, limit, skip int) (*catalog.ProductPage, error)
	getFn      func(ctx context.Context, id int64) (*catalog.Product, error)
	searchFn   func(ctx context.Context, q string) (*catalog.ProductPage, error)
	categoryFn func(ctx context.Context, category string) (*catalog.ProductPage, error)
}

func (b *testCatalogBrowser) List(ctx context.Context, limit, skip int) (*catalog.ProductPage, error) {
	if b.listFn != nil {
		return b.listFn(ctx, limit, skip)
	}
	return &catalog.ProductPage{}, nil
}

func (b *testCatalogBrowser) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	if b.getFn != nil {
		return b.getFn(ctx, id)
	}
	return &catalog.Product{}, nil
}

func (b *testCatalogBrowser) Search(ctx context.Context, q string) (*catalog.ProductPage, error) {
	if b.searchFn != nil {
		return b.searchFn(ctx, q)
	}
	return &catalog.ProductPage{}, nil
}

func (b *testCatalogBrowser) ByCategory(ctx context.Context, category string) (*catalog.ProductPage, error) {
	if b.categoryFn != nil {
		return b.categoryFn(ctx, category)
	}
	return &catalog.ProductPage{}, nil
}

func TestProductListAppliesDefaults(t *testing.T) {
	browser := &testCatalogBrowser{
		listFn: func(ctx context.Context, limit, skip int) (*catalog.ProductPage, error) {
			if limit != defaultProductLimit || skip != 0 {
				t.Fatalf("unexpected pagination limit=%d skip=%d", limit, skip)
			}
			return &catalog.ProductPage{Total: 100, Limit: limit}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()

	ProductList(browser, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestProductListRejectsOversizedLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=5000", nil)
	resp := httptest.NewRecorder()

	ProductList(&testCatalogBrowser{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductDetailMapsUpstreamNotFound(t *testing.T) {
	browser := &testCatalogBrowser{
		getFn: func(ctx context.Context, id int64) (*catalog.Product, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/404", nil)
	req = addRouteParam(req, "productId", "404")
	resp := httptest.NewRecorder()

	ProductDetail(browser, testControllerLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductSearchRequiresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search", nil)
	resp := httptest.NewRecorder()

	ProductSearch(&testCatalogBrowser{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductSearchForwardsQuery(t *testing.T) {
	browser := &testCatalogBrowser{
		searchFn: func(ctx context.Context, q string) (*catalog.ProductPage, error) {
			if q != "lamp" {
				t.Fatalf("unexpected query %q", q)
			}
			return &catalog.ProductPage{Products: []catalog.Product{{ID: 1, Title: "Lamp"}}, Total: 1}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=lamp", nil)
	resp := httptest.NewRecorder()

	ProductSearch(browser, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data catalog.ProductPage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Total != 1 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestProductsByCategorySuccess(t *testing.T) {
	browser := &testCatalogBrowser{
		categoryFn: func(ctx context.Context, category string) (*catalog.ProductPage, error) {
			if category != "furniture" {
				t.Fatalf("unexpected category %q", category)
			}
			return &catalog.ProductPage{Total: 5}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/category/furniture", nil)
	req = addRouteParam(req, "category", "furniture")
	resp := httptest.NewRecorder()

	ProductsByCategory(browser, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lmarquez/storefront-backend/internal/cart"
	"github.com/lmarquez/storefront-backend/internal/catalog"
	"github.com/lmarquez/storefront-backend/internal/persist"
	"github.com/lmarquez/storefront-backend/internal/wishlist"
	"github.com/lmarquez/storefront-backend/pkg/config"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

type stubStateStore struct {
	data    map[string]string
	counts  map[string]int64
	pingErr error
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{data: map[string]string{}, counts: map[string]int64{}}
}

func (s *stubStateStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *stubStateStore) Get(ctx context.Context, key string) (string, error) {
	return s.data[key], nil
}

func (s *stubStateStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *stubStateStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	s.counts[scope]++
	return s.counts[scope] <= limit, s.counts[scope], nil
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "title": "Lamp", "price": 12.5, "thumbnail": "lamp.png",
		})
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{{"id": 1, "title": "Lamp", "price": 12.5}},
			"total":    1, "skip": 0, "limit": 30,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Env: "test", Port: "0"},
		Cart:      config.CartConfig{TaxRate: 0.10, MaxQuantity: 10},
		RateLimit: config.RateLimitConfig{SessionWindow: time.Minute, SessionLimit: 2},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *stubStateStore) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test-routing", Output: io.Discard})
	state := newStubStateStore()

	catalogSrv := newCatalogServer(t)
	catalogClient, err := catalog.NewClient(config.CatalogConfig{BaseURL: catalogSrv.URL, Timeout: time.Second}, logg)
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}

	cartAdapter, err := persist.NewAdapter[cart.LineItem](state, 0, logg)
	if err != nil {
		t.Fatalf("cart adapter: %v", err)
	}
	cartStore, err := cart.NewStore(cart.StoreParams{
		Adapter:     cartAdapter,
		KeyFor:      func(sessionID string) string { return "sf:cart:" + sessionID },
		MaxQuantity: cfg.Cart.MaxQuantity,
		Logger:      logg,
	})
	if err != nil {
		t.Fatalf("cart store: %v", err)
	}
	cartService, err := cart.NewService(cart.ServiceParams{Store: cartStore, Products: catalogClient, TaxRate: cfg.Cart.TaxRate})
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}

	wishlistAdapter, err := persist.NewAdapter[catalog.Product](state, 0, logg)
	if err != nil {
		t.Fatalf("wishlist adapter: %v", err)
	}
	wishlistStore, err := wishlist.NewStore(wishlist.StoreParams{
		Adapter: wishlistAdapter,
		KeyFor:  func(sessionID string) string { return "sf:wishlist:" + sessionID },
		Logger:  logg,
	})
	if err != nil {
		t.Fatalf("wishlist store: %v", err)
	}
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{Store: wishlistStore, Products: catalogClient})
	if err != nil {
		t.Fatalf("wishlist service: %v", err)
	}

	return NewRouter(cfg, logg, state, catalogClient, cartService, wishlistService, nil, nil), state
}

func TestHealthLiveRoute(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartRoutesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodDelete, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart/items"},
		{http.MethodGet, "/api/v1/wishlist"},
		{http.MethodPost, "/api/v1/wishlist/items/1/toggle"},
	} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 without session got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("X-Session-Id", "sess-http")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	resp := do(http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("add item: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(http.MethodPatch, "/api/v1/cart/items/1", `{"quantity":3}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("set quantity: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(http.MethodGet, "/api/v1/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cart.Summary `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal cart: %v", err)
	}
	if envelope.Data.TotalItems != 3 || envelope.Data.Subtotal != 37.5 {
		t.Fatalf("unexpected aggregates %+v", envelope.Data)
	}

	resp = do(http.MethodDelete, "/api/v1/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("clear: expected 200 got %d", resp.Code)
	}
}

func TestCartRejectsUnknownProductOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":999}`))
	req.Header.Set("X-Session-Id", "sess-http")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product got %d", resp.Code)
	}
}

func TestWishlistToggleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	toggle := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items/1/toggle", nil)
		req.Header.Set("X-Session-Id", "sess-http")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	resp := toggle()
	if resp.Code != http.StatusOK {
		t.Fatalf("first toggle: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data wishlist.Summary `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal wishlist: %v", err)
	}
	if envelope.Data.TotalItems != 1 {
		t.Fatalf("expected one saved product, got %+v", envelope.Data)
	}

	resp = toggle()
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal wishlist: %v", err)
	}
	if envelope.Data.TotalItems != 0 {
		t.Fatalf("expected empty wishlist after second toggle, got %+v", envelope.Data)
	}
}

func TestSessionCreationIsRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	issue := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := issue(); code != http.StatusCreated {
		t.Fatalf("first session: expected 201 got %d", code)
	}
	if code := issue(); code != http.StatusCreated {
		t.Fatalf("second session: expected 201 got %d", code)
	}
	if code := issue(); code != http.StatusTooManyRequests {
		t.Fatalf("third session: expected 429 got %d", code)
	}
}

func TestProductsProxyRoute(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data catalog.Product `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	if envelope.Data.Title != "Lamp" {
		t.Fatalf("unexpected product %+v", envelope.Data)
	}
}

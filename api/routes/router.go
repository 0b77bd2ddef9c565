package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lmarquez/storefront-backend/api/controllers"
	"github.com/lmarquez/storefront-backend/api/middleware"
	"github.com/lmarquez/storefront-backend/internal/cart"
	"github.com/lmarquez/storefront-backend/internal/catalog"
	"github.com/lmarquez/storefront-backend/internal/wishlist"
	"github.com/lmarquez/storefront-backend/pkg/config"
	"github.com/lmarquez/storefront-backend/pkg/logger"
	"github.com/lmarquez/storefront-backend/pkg/metrics"
)

// stateStore is the slice of the redis client the router wires into
// middleware and health checks.
type stateStore interface {
	Ping(ctx context.Context) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	state stateStore,
	catalogClient *catalog.Client,
	cartService cart.Service,
	wishlistService wishlist.Service,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	sessionPolicy := middleware.NewRateLimitPolicy(
		"session",
		cfg.RateLimit.SessionWindow,
		cfg.RateLimit.SessionLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, state, catalogClient))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionPolicy, state, logg)).Post("/session", controllers.SessionCreate())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogClient, logg))
			r.Get("/search", controllers.ProductSearch(catalogClient, logg))
			r.Get("/category/{category}", controllers.ProductsByCategory(catalogClient, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogClient, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionContext(logg))
			r.Get("/ping", controllers.SessionPing())

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, logg))
				r.Patch("/items/{productId}", controllers.CartSetQuantity(cartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(wishlistService, logg))
				r.Post("/items", controllers.WishlistAddItem(wishlistService, logg))
				r.Delete("/items/{productId}", controllers.WishlistRemoveItem(wishlistService, logg))
				r.Post("/items/{productId}/toggle", controllers.WishlistToggleItem(wishlistService, logg))
			})
		})
	})

	return r
}

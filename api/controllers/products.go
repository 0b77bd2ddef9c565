package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lmarquez/storefront-backend/api/responses"
	"github.com/lmarquez/storefront-backend/api/validators"
	"github.com/lmarquez/storefront-backend/internal/catalog"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

type catalogBrowser interface {
	List(ctx context.Context, limit, skip int) (*catalog.ProductPage, error)
	GetByID(ctx context.Context, id int64) (*catalog.Product, error)
	Search(ctx context.Context, q string) (*catalog.ProductPage, error)
	ByCategory(ctx context.Context, category string) (*catalog.ProductPage, error)
}

const (
	defaultProductLimit = 30
	maxProductLimit     = 100
	maxSearchQueryLen   = 128
)

// ProductList proxies the paginated catalog listing.
func ProductList(browser catalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultProductLimit, 1, maxProductLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		skip, err := validators.ParseQueryInt(r, "skip", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := browser.List(r.Context(), limit, skip)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductDetail proxies a single catalog record lookup.
func ProductDetail(browser catalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := browser.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductSearch proxies a full-text catalog search.
func ProductSearch(browser catalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen)
		if q == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "search query is required").WithDetails(map[string]any{"field": "q"})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := browser.Search(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductsByCategory proxies the category listing.
func ProductsByCategory(browser catalogBrowser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := validators.SanitizeString(chi.URLParam(r, "category"), maxSearchQueryLen)
		if category == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "category is required").WithDetails(map[string]any{"field": "category"})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := browser.ByCategory(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

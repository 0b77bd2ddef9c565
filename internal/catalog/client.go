package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lmarquez/storefront-backend/pkg/config"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

// Client talks to the upstream product catalog API. It performs no caching
// and no retries; callers receive coded errors for every failure mode.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient validates the configured base URL and builds a catalog client.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing catalog base url: %w", err)
	}
	if logg != nil {
		logg.Debug(context.Background(), "catalog client initialized")
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// List returns a page of products.
func (c *Client) List(ctx context.Context, limit, skip int) (*ProductPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	var page ProductPage
	if err := c.getJSON(ctx, "/products?"+query.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByID fetches a single product record.
func (c *Client) GetByID(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	var product Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Search runs a full-text query against the catalog.
func (c *Client) Search(ctx context.Context, q string) (*ProductPage, error) {
	query := url.Values{}
	query.Set("q", q)

	var page ProductPage
	if err := c.getJSON(ctx, "/products/search?"+query.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ByCategory lists the products filed under the given category slug.
func (c *Client) ByCategory(ctx context.Context, category string) (*ProductPage, error) {
	slug := strings.TrimSpace(category)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	var page ProductPage
	if err := c.getJSON(ctx, "/products/category/"+url.PathEscape(slug), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Ping checks upstream reachability with the smallest possible request.
func (c *Client) Ping(ctx context.Context) error {
	var page ProductPage
	return c.getJSON(ctx, "/products?limit=1", &page)
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reach catalog")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog request failed").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}

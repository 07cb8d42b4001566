package catalog

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client reads the remote product catalog. The HTTP implementation does no
// caching and no retries; NewCachedClient layers a TTL cache over any Client.
// Every failure is reported as a NETWORK_ERROR, UPSTREAM_ERROR, NOT_FOUND or
// VALIDATION_ERROR AppError.
type Client interface {
	ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) (*models.ProductPage, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

const maxErrorBody = 512

type httpClient struct {
	baseURL         *url.URL
	http            *http.Client
	timeout         time.Duration
	defaultPageSize int
}

// NewClient builds a catalog client for cfg.BaseURL. A nil http.Client gets a
// default one whose transport is instrumented with OpenTelemetry.
func NewClient(cfg config.Catalog, hc *http.Client) (Client, error) {

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base url %q: %w", cfg.BaseURL, err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base url %q: scheme and host are required", cfg.BaseURL)
	}

	if hc == nil {
		hc = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	pageSize := cfg.DefaultPageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	return &httpClient{
		baseURL:         base,
		http:            hc,
		timeout:         cfg.Timeout,
		defaultPageSize: pageSize,
	}, nil
}

func (c *httpClient) ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductPage, error) {

	if query.Page < 1 {
		query.Page = models.DefaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = c.defaultPageSize
	}
	if query.Page > models.MaxPage {
		return nil, errors.ValidationError("Page out of range").WithDetail(strconv.Itoa(query.Page))
	}

	path := "/products"
	endpoint := "list"
	if query.Category != "" {
		if !models.IsCategorySlug(query.Category) {
			return nil, errors.ValidationError("Invalid category").WithDetail(query.Category)
		}
		path = "/products/category/" + url.PathEscape(query.Category)
		endpoint = "category"
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(query.PageSize))
	params.Set("skip", strconv.Itoa(query.Offset()))

	var page models.ProductPage
	if err := c.get(ctx, endpoint, path, params, &page); err != nil {
		return nil, err
	}

	SortProducts(page.Products, query.Sort)

	return &page, nil
}

func (c *httpClient) GetProduct(ctx context.Context, id int) (*models.Product, error) {

	var product models.Product
	if err := c.get(ctx, "product", "/products/"+strconv.Itoa(id), nil, &product); err != nil {
		return nil, err
	}

	if product.ID == 0 {
		return nil, errors.NotFoundError("Product not found").WithDetail(fmt.Sprintf("product %d", id))
	}

	return &product, nil
}

func (c *httpClient) SearchProducts(ctx context.Context, query string) (*models.ProductPage, error) {

	query = strings.TrimSpace(query)
	if query == "" {
		return &models.ProductPage{Products: []models.Product{}}, nil
	}

	params := url.Values{}
	params.Set("q", query)

	var page models.ProductPage
	if err := c.get(ctx, "search", "/products/search", params, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *httpClient) ListCategories(ctx context.Context) ([]models.Category, error) {

	var raw json.RawMessage
	if err := c.get(ctx, "categories", "/products/categories", nil, &raw); err != nil {
		return nil, err
	}

	categories, err := decodeCategories(raw)
	if err != nil {
		return nil, errors.APIError("Malformed category list from catalog").WithError(err)
	}

	return categories, nil
}

// decodeCategories accepts both the object form [{slug,name,url}] and the
// older plain slug form ["smartphones", ...].
func decodeCategories(raw json.RawMessage) ([]models.Category, error) {

	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err == nil {
		return categories, nil
	}

	var slugs []string
	if err := json.Unmarshal(raw, &slugs); err != nil {
		return nil, err
	}

	categories = make([]models.Category, 0, len(slugs))
	for _, slug := range slugs {
		categories = append(categories, models.Category{Slug: slug, Name: displayName(slug)})
	}

	return categories, nil
}

func displayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}

	return strings.Join(words, " ")
}

func (c *httpClient) get(ctx context.Context, endpoint, path string, params url.Values, dest any) error {

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	if params != nil {
		target.RawQuery = params.Encode()
	}

	logger := slog.Default().With(slog.String("endpoint", endpoint), slog.String("url", target.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return errors.InternalError("Failed to build catalog request").WithError(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveCatalogRequest(endpoint, "network_error", time.Since(start))
		logger.Warn("Catalog request failed", slog.String("error", err.Error()))
		return errors.NetworkError("Catalog is unreachable").WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := fmt.Sprintf("catalog responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

		if resp.StatusCode == http.StatusNotFound && endpoint == "product" {
			metrics.ObserveCatalogRequest(endpoint, "not_found", time.Since(start))
			return errors.NotFoundError("Product not found").WithDetail(detail)
		}

		metrics.ObserveCatalogRequest(endpoint, "api_error", time.Since(start))
		logger.Warn("Catalog responded with failure status", slog.Int("status", resp.StatusCode))
		return errors.APIError("Catalog request failed").WithDetail(detail)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		// a deadline hit while streaming the body is still a transport failure
		if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(err, context.Canceled) {
			metrics.ObserveCatalogRequest(endpoint, "network_error", time.Since(start))
			return errors.NetworkError("Catalog is unreachable").WithError(err)
		}

		metrics.ObserveCatalogRequest(endpoint, "decode_error", time.Since(start))
		logger.Error("Failed to decode catalog response", slog.String("error", err.Error()))
		return errors.APIError("Malformed response from catalog").WithError(err)
	}

	metrics.ObserveCatalogRequest(endpoint, "ok", time.Since(start))
	logger.Debug("Catalog request completed", slog.Duration("duration", time.Since(start)))

	return nil
}

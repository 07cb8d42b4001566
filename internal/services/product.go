package service

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	"github.com/microcosm-cc/bluemonday"
)

const productsPath = "/api/v1/products"

type ProductService interface {
	ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductListing, error)
	GetProduct(ctx context.Context, id int) (*models.ProductDetail, error)
	SearchProducts(ctx context.Context, query string) (*models.ProductPage, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	Suggest(ctx context.Context, suggester *search.Suggester, query string) (*models.Suggestions, error)
}

type productService struct {
	catalog      catalog.Client
	similarLimit int
	policy       *bluemonday.Policy
}

func NewProductService(client catalog.Client, similarLimit int) ProductService {
	if similarLimit <= 0 {
		similarLimit = 4
	}

	return &productService{
		catalog:      client,
		similarLimit: similarLimit,
		policy:       bluemonday.StrictPolicy(),
	}
}

func (s *productService) ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductListing, error) {

	if query.Sort != "" && !catalog.IsSortKey(query.Sort) {
		return nil, errors.ValidationError("Unsupported sort key").WithDetail(query.Sort)
	}

	page, err := s.catalog.ListProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	listing := &models.ProductListing{
		Products:   page.Products,
		Total:      page.Total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: models.TotalPages(page.Total, query.PageSize),
		Category:   query.Category,
		Sort:       query.Sort,
		Links:      pageLinks(query, page.Total),
	}

	if listing.Products == nil {
		listing.Products = []models.Product{}
	}

	return listing, nil
}

func pageLinks(query models.ListQuery, total int) models.PageLinks {
	links := models.PageLinks{Self: productsPath + "?" + query.Encode()}

	if query.Page > 1 {
		links.Prev = productsPath + "?" + query.WithPage(query.Page-1).Encode()
	}
	if query.Page < models.TotalPages(total, query.PageSize) {
		links.Next = productsPath + "?" + query.WithPage(query.Page+1).Encode()
	}

	return links
}

// GetProduct loads a product and up to similarLimit other products of the
// same category. A failed similar-products lookup leaves Similar empty.
func (s *productService) GetProduct(ctx context.Context, id int) (*models.ProductDetail, error) {

	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: *product, Similar: []models.Product{}}

	if product.Category == "" {
		return detail, nil
	}

	page, err := s.catalog.ListProducts(ctx, models.ListQuery{
		Page:     models.DefaultPage,
		PageSize: s.similarLimit,
		Category: product.Category,
	})
	if err != nil {
		slog.Warn("Failed to load similar products",
			slog.Int("productId", id),
			slog.String("category", product.Category),
			slog.String("error", err.Error()),
		)
		return detail, nil
	}

	for _, p := range page.Products {
		if p.ID == product.ID {
			continue
		}
		if len(detail.Similar) == s.similarLimit {
			break
		}
		detail.Similar = append(detail.Similar, p)
	}

	return detail, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) (*models.ProductPage, error) {
	return s.catalog.SearchProducts(ctx, s.sanitize(query))
}

// ListCategories never fails: when the catalog is unavailable the category
// navigation is simply empty.
func (s *productService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		slog.Warn("Failed to load categories", slog.String("error", err.Error()))
		return []models.Category{}, nil
	}

	return categories, nil
}

func (s *productService) Suggest(ctx context.Context, suggester *search.Suggester, query string) (*models.Suggestions, error) {
	return suggester.Suggest(ctx, s.sanitize(query))
}

// sanitize strips markup from free-text input and returns plain text.
func (s *productService) sanitize(query string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(query)))
}

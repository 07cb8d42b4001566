package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService  service.ProductService
	validator       *validator.Validate
	defaultPageSize int
}

func NewProductHandler(productService service.ProductService, defaultPageSize int) *ProductHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = models.DefaultPageSize
	}

	return &ProductHandler{
		productService:  productService,
		validator:       utils.NewValidator(),
		defaultPageSize: defaultPageSize,
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Returns one page of the catalog, optionally scoped to a category and sorted.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int						false	"Page number (default: 1)"		minimum(1)	maximum(10000)
//	@Param			pageSize	query		int						false	"Products per page (default: 12)"	minimum(1)	maximum(100)
//	@Param			category	query		string					false	"Category slug (lowercase letters, digits and hyphens)"
//	@Param			sort		query		string					false	"Sort key"	Enums(price-asc, price-desc, rating)
//	@Success		200			{object}	models.ProductListing	"Product page"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid query"
//	@Failure		502			{object}	response.ErrorResponse	"Catalog responded with an error"
//	@Failure		503			{object}	response.ErrorResponse	"Catalog unreachable"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query := models.ParseListQuery(r.URL.Query(), h.defaultPageSize)
		if !utils.Validate(w, query, h.validator) {
			logger.Warn("Invalid product list query", slog.String("query", r.URL.RawQuery))
			return
		}

		logger = logger.With(
			slog.Int("page", query.Page),
			slog.Int("pageSize", query.PageSize),
			slog.String("category", query.Category),
		)

		listing, err := h.productService.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed", slog.Int("count", len(listing.Products)), slog.Int("total", listing.Total))
		response.Success(w, http.StatusOK, listing)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Description	Returns a product with up to four similar products from the same category.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.ProductDetail	"Product detail"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		503	{object}	response.ErrorResponse	"Catalog unreachable"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int("productId", id))

		detail, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeNotFound) {
				logger.Info("Product not found")
			} else {
				logger.Error("Failed to get product", slog.String("error", err.Error()))
			}
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Description	Returns the catalog categories. An unavailable catalog yields an empty list.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}	models.Category	"Categories"
//	@Router			/categories [get]
func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.productService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// SearchProducts godoc
//	@Summary		Search products
//	@Description	Full-text product search. An empty query returns an empty result without calling the catalog.
//	@Tags			Search
//	@Produce		json
//	@Param			q	query		string					false	"Search text"
//	@Success		200	{object}	models.ProductPage		"Matching products"
//	@Failure		502	{object}	response.ErrorResponse	"Catalog responded with an error"
//	@Failure		503	{object}	response.ErrorResponse	"Catalog unreachable"
//	@Router			/search [get]
func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := h.productService.SearchProducts(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			logger.Error("Search failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

// Suggestions godoc
//	@Summary		Type-ahead suggestions
//	@Description	Debounced suggestions for the session. A request overtaken by a newer one from the same session answers 409.
//	@Tags			Search
//	@Produce		json
//	@Param			q	query		string					false	"Partial search text"
//	@Success		200	{object}	models.Suggestions		"Suggestions"
//	@Failure		409	{object}	response.ErrorResponse	"Superseded by a newer query"
//	@Failure		429	{object}	response.ErrorResponse	"Rate limited"
//	@Failure		503	{object}	response.ErrorResponse	"Catalog unreachable"
//	@Router			/search/suggestions [get]
func (h *ProductHandler) Suggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := session.FromContext(r.Context())
		if !ok {
			logger.Error("Suggestion request without session")
			response.Error(w, errors.InternalError("Session is not available"))
			return
		}

		suggestions, err := h.productService.Suggest(r.Context(), s.Suggester, r.URL.Query().Get("q"))
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeSuperseded) {
				logger.Debug("Suggestion superseded")
			} else if r.Context().Err() == nil {
				logger.Warn("Suggestion failed", slog.String("error", err.Error()))
			}
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, suggestions)
	}
}

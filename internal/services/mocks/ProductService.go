package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductListing, error) {
	args := m.Called(ctx, query)

	var listing *models.ProductListing
	if v := args.Get(0); v != nil {
		listing = v.(*models.ProductListing)
	}

	return listing, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, id int) (*models.ProductDetail, error) {
	args := m.Called(ctx, id)

	var detail *models.ProductDetail
	if v := args.Get(0); v != nil {
		detail = v.(*models.ProductDetail)
	}

	return detail, args.Error(1)
}

func (m *ProductService) SearchProducts(ctx context.Context, query string) (*models.ProductPage, error) {
	args := m.Called(ctx, query)

	var page *models.ProductPage
	if v := args.Get(0); v != nil {
		page = v.(*models.ProductPage)
	}

	return page, args.Error(1)
}

func (m *ProductService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	var categories []models.Category
	if v := args.Get(0); v != nil {
		categories = v.([]models.Category)
	}

	return categories, args.Error(1)
}

func (m *ProductService) Suggest(ctx context.Context, suggester *search.Suggester, query string) (*models.Suggestions, error) {
	args := m.Called(ctx, suggester, query)

	var suggestions *models.Suggestions
	if v := args.Get(0); v != nil {
		suggestions = v.(*models.Suggestions)
	}

	return suggestions, args.Error(1)
}

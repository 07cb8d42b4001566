package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// Client is a testify mock of catalog.Client.
type Client struct {
	mock.Mock
}

func (m *Client) ListProducts(ctx context.Context, query models.ListQuery) (*models.ProductPage, error) {
	args := m.Called(ctx, query)

	var page *models.ProductPage
	if v := args.Get(0); v != nil {
		page = v.(*models.ProductPage)
	}

	return page, args.Error(1)
}

func (m *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, args.Error(1)
}

func (m *Client) SearchProducts(ctx context.Context, query string) (*models.ProductPage, error) {
	args := m.Called(ctx, query)

	var page *models.ProductPage
	if v := args.Get(0); v != nil {
		page = v.(*models.ProductPage)
	}

	return page, args.Error(1)
}

func (m *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	var categories []models.Category
	if v := args.Get(0); v != nil {
		categories = v.([]models.Category)
	}

	return categories, args.Error(1)
}

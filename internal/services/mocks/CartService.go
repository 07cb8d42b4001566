package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) result(args mock.Arguments) (*models.Cart, error) {
	var c *models.Cart
	if v := args.Get(0); v != nil {
		c = v.(*models.Cart)
	}

	return c, args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, store *cart.Store) (*models.Cart, error) {
	return m.result(m.Called(ctx, store))
}

func (m *CartService) AddItem(ctx context.Context, store *cart.Store, req *models.AddItemRequest) (*models.Cart, error) {
	return m.result(m.Called(ctx, store, req))
}

func (m *CartService) UpdateQuantity(ctx context.Context, store *cart.Store, productID, quantity int) (*models.Cart, error) {
	return m.result(m.Called(ctx, store, productID, quantity))
}

func (m *CartService) RemoveItem(ctx context.Context, store *cart.Store, productID int) (*models.Cart, error) {
	return m.result(m.Called(ctx, store, productID))
}

func (m *CartService) Clear(ctx context.Context, store *cart.Store) (*models.Cart, error) {
	return m.result(m.Called(ctx, store))
}

package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type CartService interface {
	GetCart(ctx context.Context, store *cart.Store) (*models.Cart, error)
	AddItem(ctx context.Context, store *cart.Store, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, store *cart.Store, productID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, store *cart.Store, productID int) (*models.Cart, error)
	Clear(ctx context.Context, store *cart.Store) (*models.Cart, error)
}

type cartService struct {
	catalog catalog.Client
}

func NewCartService(client catalog.Client) CartService {
	return &cartService{catalog: client}
}

func (s *cartService) GetCart(ctx context.Context, store *cart.Store) (*models.Cart, error) {
	if store == nil {
		return nil, errors.InternalError("Cart is not available")
	}

	snapshot := store.Snapshot()

	return &snapshot, nil
}

// AddItem resolves the product through the catalog so the cart always holds
// the catalog's title and price.
func (s *cartService) AddItem(ctx context.Context, store *cart.Store, req *models.AddItemRequest) (*models.Cart, error) {
	if store == nil {
		return nil, errors.InternalError("Cart is not available")
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	store.Add(*product, quantity)

	return s.GetCart(ctx, store)
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, store *cart.Store, productID, quantity int) (*models.Cart, error) {
	if store == nil {
		return nil, errors.InternalError("Cart is not available")
	}

	if quantity <= 0 {
		store.Remove(productID)
	} else {
		store.UpdateQuantity(productID, quantity)
	}

	return s.GetCart(ctx, store)
}

func (s *cartService) RemoveItem(ctx context.Context, store *cart.Store, productID int) (*models.Cart, error) {
	if store == nil {
		return nil, errors.InternalError("Cart is not available")
	}

	store.Remove(productID)

	return s.GetCart(ctx, store)
}

func (s *cartService) Clear(ctx context.Context, store *cart.Store) (*models.Cart, error) {
	if store == nil {
		return nil, errors.InternalError("Cart is not available")
	}

	store.Clear()

	return s.GetCart(ctx, store)
}

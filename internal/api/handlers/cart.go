package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	eventBuffer       = 16
	heartbeatInterval = 25 * time.Second
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   utils.NewValidator(),
	}
}

func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, *slog.Logger, bool) {
	logger := middleware.LoggerFromContext(r.Context())

	s, ok := session.FromContext(r.Context())
	if !ok {
		logger.Error("Cart request without session")
		response.Error(w, errors.InternalError("Session is not available"))
		return nil, logger, false
	}

	return s, logger, true
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the session's cart with line totals, total and item count.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart	"Cart"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), s.Cart)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// CartCount godoc
//	@Summary		Cart badge count
//	@Description	Returns the number of units in the session's cart.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartCount	"Item count"
//	@Router			/cart/count [get]
func (h *CartHandler) CartCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, _, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, models.CartCount{ItemCount: s.Cart.Count()})
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds quantity (default 1) of a catalog product. Adding a product already in the cart increases its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		503		{object}	response.ErrorResponse	"Catalog unreachable"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		logger = logger.With(slog.Int("productId", req.ProductID))

		cart, err := h.cartService.AddItem(r.Context(), s.Cart, &req)
		if err != nil {
			logger.Error("Failed to add item", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("itemCount", cart.ItemCount))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set the quantity of a cart line
//	@Description	Sets an absolute quantity. A quantity of 0 removes the line; an unknown product is ignored.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int								true	"Product ID"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.Cart						"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), s.Cart, id, *req.Quantity)
		if err != nil {
			logger.Error("Failed to update quantity", slog.Int("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.Cart				"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), s.Cart, id)
		if err != nil {
			logger.Error("Failed to remove item", slog.Int("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart	"Empty cart"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.Clear(r.Context(), s.Cart)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// CartEvents godoc
//	@Summary		Stream cart changes
//	@Description	Server-Sent Events: the current cart first, then one "cart" event per change, in mutation order.
//	@Tags			Cart
//	@Produce		text/event-stream
//	@Success		200	{object}	models.CartChange	"Event stream"
//	@Router			/cart/events [get]
func (h *CartHandler) CartEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, logger, ok := currentSession(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			response.Error(w, errors.InternalError("Streaming is not supported"))
			return
		}

		events := make(chan models.CartChange, eventBuffer)
		unsubscribe := s.Cart.Subscribe(func(change models.CartChange) {
			select {
			case events <- change:
			default:
				logger.Warn("Dropping cart event for slow subscriber", slog.String("op", string(change.Op)))
			}
		})
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, models.CartChange{Op: models.CartOpSnapshot, Cart: s.Cart.Snapshot()}); err != nil {
			return
		}
		flusher.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Debug("Cart event stream closed")
				return
			case change := <-events:
				if err := writeEvent(w, change); err != nil {
					logger.Warn("Failed to write cart event", slog.String("error", err.Error()))
					return
				}
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, change models.CartChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: cart\ndata: %s\n\n", data)

	return err
}

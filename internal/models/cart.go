package models

import "github.com/shopspring/decimal"

// CartItem is a product line as seen in a Cart snapshot. LineTotal is filled
// in when the snapshot is taken.
type CartItem struct {
	Product
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Cart is a read-only snapshot of a cart store. Total and ItemCount are
// derived from Items when the snapshot is taken.
type Cart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

type CartOp string

const (
	CartOpAdd    CartOp = "add"
	CartOpRemove CartOp = "remove"
	CartOpUpdate CartOp = "update"
	CartOpClear  CartOp = "clear"

	// CartOpSnapshot marks the initial state sent to a new event subscriber.
	CartOpSnapshot CartOp = "snapshot"
)

type CartChange struct {
	Op        CartOp `json:"op"`
	ProductID int    `json:"productId,omitempty"`
	Cart      Cart   `json:"cart"`
}

type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity"   validate:"omitempty,min=1,max=1000"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=1000"`
}

type CartCount struct {
	ItemCount int `json:"itemCount"`
}

package cart

import (
	"sync"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Listener receives every state-changing mutation of a Store, in mutation
// order. Listeners run synchronously and must not call back into the Store.
type Listener func(change models.CartChange)

type line struct {
	product  models.Product
	quantity int
}

// Store holds the contents of one cart. Items keep insertion order and there
// is at most one line per product id. The total is never stored; it is
// summed from the lines whenever a snapshot is taken.
type Store struct {
	// dispatchMu serialises mutation and notification so listeners observe
	// changes in the order they happened.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	lines     []line
	listeners map[uint64]Listener
	nextID    uint64
}

func NewStore() *Store {
	return &Store{listeners: make(map[uint64]Listener)}
}

// Add merges quantity into the line for product.ID, or appends a new line.
// A non-positive quantity is ignored.
func (s *Store) Add(product models.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mutate(models.CartOpAdd, product.ID, func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			s.lines[i].quantity += quantity
			return true
		}

		s.lines = append(s.lines, line{product: product, quantity: quantity})
		return true
	})
}

// Remove deletes the line for id. Absent ids are a no-op.
func (s *Store) Remove(id int) {
	s.mutate(models.CartOpRemove, id, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}

		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return true
	})
}

// UpdateQuantity sets the quantity of the line for id. Non-positive
// quantities and absent ids are a no-op; removal goes through Remove.
func (s *Store) UpdateQuantity(id, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mutate(models.CartOpUpdate, id, func() bool {
		i := s.indexOf(id)
		if i < 0 || s.lines[i].quantity == quantity {
			return false
		}

		s.lines[i].quantity = quantity
		return true
	})
}

func (s *Store) Clear() {
	s.mutate(models.CartOpClear, 0, func() bool {
		if len(s.lines) == 0 {
			return false
		}

		s.lines = nil
		return true
	})
}

func (s *Store) Snapshot() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(lineTotal(l))
	}

	return total
}

// Count is the number of units in the cart, as shown on a cart badge.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lines {
		count += l.quantity
	}

	return count
}

// Len is the number of distinct products in the cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lines)
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) mutate(op models.CartOp, productID int, apply func() bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}

	change := models.CartChange{Op: op, ProductID: productID, Cart: s.snapshotLocked()}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}

func (s *Store) snapshotLocked() models.Cart {
	cart := models.Cart{
		Items: make([]models.CartItem, 0, len(s.lines)),
		Total: decimal.Zero,
	}

	for _, l := range s.lines {
		lt := lineTotal(l)
		cart.Items = append(cart.Items, models.CartItem{
			Product:   l.product,
			Quantity:  l.quantity,
			LineTotal: lt,
		})
		cart.Total = cart.Total.Add(lt)
		cart.ItemCount += l.quantity
	}

	return cart
}

func (s *Store) indexOf(id int) int {
	for i, l := range s.lines {
		if l.product.ID == id {
			return i
		}
	}

	return -1
}

func lineTotal(l line) decimal.Decimal {
	return l.product.Price.Mul(decimal.NewFromInt(int64(l.quantity)))
}

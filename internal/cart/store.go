package cart

import (
	"sync"

	"github.com/sokolink/sokolink-app/internal/catalog"
)

// Item is a catalogue product plus the buyer's chosen quantity. The store
// keeps at most one item per product id.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity for the line.
func (i Item) LineTotal() int {
	return i.Price * i.Quantity
}

// Store owns the in-progress selection of purchasable items. It is the sole
// writer for cart state; pages reach it only through the router's callbacks.
type Store struct {
	mu          sync.Mutex
	items       []Item
	deliveryFee int
}

// NewStore builds a cart store with the configured flat delivery fee.
func NewStore(deliveryFee int) *Store {
	return &Store{deliveryFee: deliveryFee}
}

// Add inserts the product with quantity 1, or bumps the existing line's
// quantity. Existing item order is preserved; new items append.
func (s *Store) Add(product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, Item{Product: product, Quantity: 1})
}

// UpdateQuantity adjusts a line's quantity by delta, clamped at 1. Removal
// goes through Remove, never through a zero quantity. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			next := s.items[i].Quantity + delta
			if next < 1 {
				next = 1
			}
			s.items[i].Quantity = next
			return
		}
	}
}

// Remove deletes the line with the given id if present.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the store. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal sums price times quantity across lines.
func (s *Store) Subtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// DeliveryFee is the flat fee for non-empty carts, zero otherwise.
func (s *Store) DeliveryFee() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0
	}
	return s.deliveryFee
}

// Total is subtotal plus delivery fee.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0
	}
	return s.subtotalLocked() + s.deliveryFee
}

// Seed replaces the cart contents. Used only to boot demo data.
func (s *Store) Seed(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]Item, len(items))
	copy(s.items, items)
}

func (s *Store) subtotalLocked() int {
	sum := 0
	for _, item := range s.items {
		sum += item.LineTotal()
	}
	return sum
}

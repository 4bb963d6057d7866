package orders

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sokolink/sokolink-app/internal/cart"
	"github.com/sokolink/sokolink-app/pkg/enums"
)

// Order is a committed purchase. Items and total are frozen at creation;
// only the status may change afterwards, and that transition lives outside
// this core.
type Order struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Items       []cart.Item       `json:"items"`
	Total       int               `json:"total"`
	Status      enums.OrderStatus `json:"status"`
	PaymentCode string            `json:"payment_code"`
}

// Store owns the append-only order history, most recent first.
type Store struct {
	mu     sync.Mutex
	orders []Order
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add freezes a snapshot of the given items into a new pending order and
// prepends it to the history. The snapshot is an independent copy: later
// cart mutations never reach a placed order.
func (s *Store) Add(items []cart.Item, total int, paymentCode string) Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]cart.Item, len(items))
	copy(snapshot, items)

	order := Order{
		ID:          s.newIDLocked(),
		Date:        DisplayDate(s.now()),
		Items:       snapshot,
		Total:       total,
		Status:      enums.OrderStatusPending,
		PaymentCode: paymentCode,
	}

	s.orders = append([]Order{order}, s.orders...)
	return order
}

// History returns a most-recent-first copy of the placed orders.
func (s *Store) History() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, len(s.orders))
	for i, order := range s.orders {
		items := make([]cart.Item, len(order.Items))
		copy(items, order.Items)
		order.Items = items
		out[i] = order
	}
	return out
}

// Get returns the order with the given id.
func (s *Store) Get(id string) (Order, bool) {
	for _, order := range s.History() {
		if order.ID == id {
			return order, true
		}
	}
	return Order{}, false
}

// Len returns the number of placed orders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Seed prepends an order as-is. Used only to boot demo data.
func (s *Store) Seed(order Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]Order{order}, s.orders...)
}

// newIDLocked generates a human-displayable CMD-xxxxx identifier unique
// within this store.
func (s *Store) newIDLocked() string {
	for {
		id := fmt.Sprintf("CMD-%05d", 10000+rand.Intn(90000))
		if !s.hasIDLocked(id) {
			return id
		}
	}
}

func (s *Store) hasIDLocked(id string) bool {
	for _, order := range s.orders {
		if order.ID == id {
			return true
		}
	}
	return false
}

var frenchMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// DisplayDate formats a creation date the way the storefront shows it,
// e.g. "15 oct. 2024".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

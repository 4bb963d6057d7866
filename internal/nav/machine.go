package nav

import (
	"sync"

	"github.com/sokolink/sokolink-app/internal/cart"
	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/orders"
	"github.com/sokolink/sokolink-app/pkg/enums"
)

// State is a snapshot of the navigation machine: the current page plus the
// parameters the page needs to render. It is replaced wholesale on every
// transition; there is no history stack.
type State struct {
	Page    enums.Page       `json:"page"`
	Seq     uint64           `json:"seq"`
	Listing catalog.Query    `json:"listing"`
	Product *catalog.Product `json:"product,omitempty"`
	Order   *orders.Order    `json:"order,omitempty"`
}

// Machine owns the current page and its parameters. Transitions are total:
// an unknown target resolves to the error page instead of failing. Seq
// increments on every transition so the view layer can reset scroll.
type Machine struct {
	mu    sync.Mutex
	state State
}

func New() *Machine {
	return &Machine{state: State{
		Page:    enums.PageHome,
		Listing: catalog.DefaultQuery(),
	}}
}

// Navigate unconditionally sets the current page. Invalid targets land on
// the error page.
func (m *Machine) Navigate(page enums.Page) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navigateLocked(page)
}

// NavigateNamed parses a raw page name first; anything unparseable lands on
// the error page.
func (m *Machine) NavigateNamed(name string) {
	page, err := enums.ParsePage(name)
	if err != nil {
		page = enums.PageError
	}
	m.Navigate(page)
}

// NavigateToListing stashes the listing query, then transitions to the
// listing page.
func (m *Machine) NavigateToListing(kind enums.ListingKind, value, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Listing = catalog.Query{Kind: kind, Value: value, Label: label}
	m.navigateLocked(enums.PageListing)
}

// NavigateToProduct stashes the selected product, then transitions to the
// product-details page.
func (m *Machine) NavigateToProduct(product catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := product
	m.state.Product = &p
	m.navigateLocked(enums.PageProductDetails)
}

// NavigateToOrder stashes the selected order, then transitions to the
// order-details page.
func (m *Machine) NavigateToOrder(order orders.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := order
	m.state.Order = &o
	m.navigateLocked(enums.PageOrderDetails)
}

// SelectOrder stashes an order without transitioning. Checkout completion
// uses it before landing on the confirmation page.
func (m *Machine) SelectOrder(order orders.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := order
	m.state.Order = &o
}

// HandleSessionChange reacts to a session becoming present: while sitting on
// login or register the machine moves to target. Reports whether a
// transition happened. Session absence never forces navigation.
func (m *Machine) HandleSessionChange(target enums.Page) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Page != enums.PageLogin && m.state.Page != enums.PageRegister {
		return false
	}
	m.navigateLocked(target)
	return true
}

// Resolve applies missing-entity redirects and returns the resulting state:
// order-details without a selected order falls back to settings, and
// checkout with an empty cart falls back to the cart page. Product-details
// without a selection renders empty, matching the storefront.
func (m *Machine) Resolve(cartEmpty bool) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.state.Page == enums.PageOrderDetails && m.state.Order == nil:
		m.navigateLocked(enums.PageSettings)
	case m.state.Page == enums.PageCheckout && cartEmpty:
		m.navigateLocked(enums.PageCart)
	}
	return m.snapshotLocked()
}

// State returns the current snapshot without applying redirects.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Page returns just the current page.
func (m *Machine) Page() enums.Page {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Page
}

func (m *Machine) navigateLocked(page enums.Page) {
	if !page.IsValid() {
		page = enums.PageError
	}
	m.state.Page = page
	m.state.Seq++
}

func (m *Machine) snapshotLocked() State {
	out := m.state
	if m.state.Product != nil {
		p := *m.state.Product
		out.Product = &p
	}
	if m.state.Order != nil {
		o := *m.state.Order
		items := make([]cart.Item, len(o.Items))
		copy(items, o.Items)
		o.Items = items
		out.Order = &o
	}
	return out
}

package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/sokolink/sokolink-app/internal/cart"
	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/checkout"
	"github.com/sokolink/sokolink-app/internal/nav"
	"github.com/sokolink/sokolink-app/internal/orders"
	"github.com/sokolink/sokolink-app/internal/session"
	"github.com/sokolink/sokolink-app/pkg/config"
	"github.com/sokolink/sokolink-app/pkg/enums"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// Params carries the router's collaborators.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Catalog  *catalog.Provider
	Sessions session.Collaborator
}

// Router is the composition root. It exclusively owns the navigation
// machine, cart store, and order store; pages and the HTTP surface reach
// them only through the dispatch methods below. Every mutation publishes a
// new version to watchers, which is how the view layer learns to redraw.
//
// r.mu is the single mutation lock: every dispatch method and View hold it
// for the full read-modify-publish section, so cross-store sequences (the
// order snapshot plus cart clear on payment completion) are atomic to both
// concurrent dispatches and view snapshots. The stores keep their own
// mutexes, but those guard direct store access only, never ordering across
// stores.
type Router struct {
	cfg      *config.Config
	logg     *logger.Logger
	catalog  *catalog.Provider
	sessions session.Collaborator

	nav      *nav.Machine
	cart     *cart.Store
	orders   *orders.Store
	checkout *checkout.Service

	mu             sync.Mutex
	version        uint64
	watchers       map[int]chan uint64
	nextWatcher    int
	sessionPresent bool
	paymentError   string
	unsubscribe    func()
}

func New(p Params) (*Router, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("config required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if p.Sessions == nil {
		return nil, fmt.Errorf("session collaborator required")
	}

	r := &Router{
		cfg:      p.Config,
		logg:     p.Logger,
		catalog:  p.Catalog,
		sessions: p.Sessions,
		nav:      nav.New(),
		cart:     cart.NewStore(p.Config.Checkout.DeliveryFee),
		orders:   orders.NewStore(),
		watchers: map[int]chan uint64{},
	}

	svc, err := checkout.NewService(p.Config.Checkout, r.cart, r.completePayment, r.failPayment)
	if err != nil {
		return nil, err
	}
	r.checkout = svc

	if p.Config.App.SeedDemoData() {
		r.seedDemoData()
	}
	return r, nil
}

// Start resolves the startup session and subscribes to session changes. A
// session already present while sitting on login or register lands on home;
// a session appearing later lands on the configured post-login page.
func (r *Router) Start(ctx context.Context) error {
	current, err := r.sessions.Current(ctx)
	if err != nil {
		// Session trouble must not break navigation; surface and move on.
		r.logg.Warn(ctx, "session lookup failed: "+err.Error())
	}

	r.mu.Lock()
	r.sessionPresent = current != nil
	if current != nil && r.nav.HandleSessionChange(enums.PageHome) {
		r.publishLocked()
	}
	r.mu.Unlock()

	r.unsubscribe = r.sessions.OnChange(r.handleSessionChange)
	return nil
}

// Close detaches the session subscription and aborts any pending payment.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	r.checkout.Cancel()
}

// Navigate moves to the named page. Unparseable names land on the error
// page; navigating away from checkout cancels an in-flight payment.
func (r *Router) Navigate(name string) {
	page, err := enums.ParsePage(name)
	if err != nil {
		page = enums.PageError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveCheckoutLocked(page)
	r.nav.Navigate(page)
	r.publishLocked()
}

// NavigateToListing stashes a listing query and moves to the listing page.
func (r *Router) NavigateToListing(kindRaw, value, label string) error {
	kind, err := enums.ParseListingKind(kindRaw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid listing kind")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveCheckoutLocked(enums.PageListing)
	r.nav.NavigateToListing(kind, value, label)
	r.publishLocked()
	return nil
}

// NavigateToProduct selects a catalogue product and moves to its detail page.
func (r *Router) NavigateToProduct(productID string) error {
	product, ok := r.catalog.Get(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveCheckoutLocked(enums.PageProductDetails)
	r.nav.NavigateToProduct(product)
	r.publishLocked()
	return nil
}

// NavigateToOrder selects a placed order and moves to its detail page.
func (r *Router) NavigateToOrder(orderID string) error {
	order, ok := r.orders.Get(orderID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveCheckoutLocked(enums.PageOrderDetails)
	r.nav.NavigateToOrder(order)
	r.publishLocked()
	return nil
}

// AddToCart puts a catalogue product in the cart.
func (r *Router) AddToCart(productID string) error {
	product, ok := r.catalog.Get(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Add(product)
	r.publishLocked()
	return nil
}

// UpdateCartQuantity adjusts a line's quantity, clamped at 1. Unknown lines
// are a no-op, matching the store contract.
func (r *Router) UpdateCartQuantity(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.UpdateQuantity(id, delta)
	r.publishLocked()
}

// RemoveFromCart drops a line if present.
func (r *Router) RemoveFromCart(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Remove(id)
	r.publishLocked()
}

// ClearCart empties the cart.
func (r *Router) ClearCart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart.Clear()
	r.publishLocked()
}

// StartCheckout begins the simulated payment for the current cart.
func (r *Router) StartCheckout(ctx context.Context) (*checkout.Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paymentError = ""
	pending, err := r.checkout.Start(ctx)
	if err != nil {
		return nil, err
	}
	r.publishLocked()
	return pending, nil
}

// Orders exposes read access to the order history.
func (r *Router) Orders() []orders.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders.History()
}

// Version returns the current state version.
func (r *Router) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Watch registers a watcher that receives the latest version after each
// mutation. Slow watchers only ever miss intermediate versions, never the
// newest one. The returned stop function unregisters the watcher.
func (r *Router) Watch() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)

	r.mu.Lock()
	id := r.nextWatcher
	r.nextWatcher++
	r.watchers[id] = ch
	r.mu.Unlock()

	return ch, func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
}

// completePayment lands a successful payment: snapshot the cart into a new
// pending order, clear the cart, and move to the confirmation page. The
// whole sequence runs under the mutation lock, so a concurrent AddToCart
// either lands before the snapshot (and ships with the order) or after the
// clear (and stays in the cart), never in between.
func (r *Router) completePayment(paymentCode string) {
	r.mu.Lock()
	order := r.orders.Add(r.cart.Items(), r.cart.Total(), paymentCode)
	r.cart.Clear()
	r.nav.SelectOrder(order)
	r.nav.Navigate(enums.PageOrderConfirmation)
	r.publishLocked()
	r.mu.Unlock()

	ctx := r.logg.WithFields(context.Background(), map[string]any{
		"order_id":     order.ID,
		"payment_code": paymentCode,
		"total":        order.Total,
	})
	r.logg.Info(ctx, "order placed")
}

// failPayment surfaces a declined payment on the checkout view.
func (r *Router) failPayment(err error) {
	r.mu.Lock()
	r.paymentError = err.Error()
	r.publishLocked()
	r.mu.Unlock()

	r.logg.Warn(context.Background(), "payment failed: "+err.Error())
}

// leaveCheckoutLocked handles navigation off the checkout page: an
// in-flight payment is aborted (a cancelled payment creates no order) and a
// surfaced payment error is dismissed, so returning to checkout later
// starts clean. Caller holds r.mu.
func (r *Router) leaveCheckoutLocked(target enums.Page) {
	if target == enums.PageCheckout {
		return
	}
	r.paymentError = ""
	if r.checkout.InFlight() {
		r.checkout.Cancel()
		r.logg.Info(context.Background(), "pending payment cancelled by navigation")
	}
}

func (r *Router) handleSessionChange(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessionPresent = s != nil
	if s != nil {
		r.nav.HandleSessionChange(r.cfg.Session.PostLogin())
	}
	r.publishLocked()
}

// publishLocked bumps the version and fans it out to watchers. Caller holds
// r.mu.
func (r *Router) publishLocked() {
	r.version++
	v := r.version
	for _, ch := range r.watchers {
		select {
		case ch <- v:
		default:
			// Replace a stale unread version with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// seedDemoData boots the stores with the storefront's demo cart and order
// history.
func (r *Router) seedDemoData() {
	items := []cart.Item{}
	if watch, ok := r.catalog.Get("101"); ok {
		items = append(items, cart.Item{Product: watch, Quantity: 1})
	}
	if sneakers, ok := r.catalog.Get("102"); ok {
		items = append(items, cart.Item{Product: sneakers, Quantity: 2})
	}
	r.cart.Seed(items)

	r.orders.Seed(orders.Order{
		ID:          "CMD-OLD-1",
		Date:        "15 oct. 2024",
		Status:      enums.OrderStatusDelivered,
		Total:       12500,
		PaymentCode: "OLD-PAY",
		Items: []cart.Item{{
			Product: catalog.Product{
				ID:       "999",
				Title:    "T-shirt Coton Bio",
				Price:    12500,
				Category: "Mode",
				Image:    "/images/mode/tshirt.jpg",
				SellerID: "s1",
			},
			Quantity: 1,
		}},
	})
}

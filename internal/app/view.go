package app

import (
	"github.com/sokolink/sokolink-app/internal/cart"
	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/orders"
	"github.com/sokolink/sokolink-app/pkg/enums"
)

// Chrome tells the view shell which navigation furniture to draw. It is a
// pure function of the current page.
type Chrome struct {
	ShowNavbar bool `json:"show_navbar"`
	ShowFooter bool `json:"show_footer"`
	Dashboard  bool `json:"dashboard"`
}

func chromeFor(page enums.Page) Chrome {
	return Chrome{
		ShowNavbar: !page.IsAuth(),
		ShowFooter: !page.IsAuth() && !page.IsDashboard(),
		Dashboard:  page.IsDashboard(),
	}
}

// View is the full render payload for the current page. Each page receives
// only the slice of state it needs; the rest of the pointers stay nil.
type View struct {
	Page           enums.Page `json:"page"`
	NavSeq         uint64     `json:"nav_seq"`
	Version        uint64     `json:"version"`
	Chrome         Chrome     `json:"chrome"`
	CartCount      int        `json:"cart_count"`
	SessionPresent bool       `json:"session_present"`

	Home              *HomeView      `json:"home,omitempty"`
	Listing           *ListingView   `json:"listing,omitempty"`
	ProductDetails    *ProductView   `json:"product_details,omitempty"`
	Cart              *CartView      `json:"cart,omitempty"`
	Checkout          *CheckoutView  `json:"checkout,omitempty"`
	OrderConfirmation *OrderView     `json:"order_confirmation,omitempty"`
	OrderDetails      *OrderView     `json:"order_details,omitempty"`
	BuyerDashboard    *DashboardView `json:"buyer_dashboard,omitempty"`
	Settings          *SettingsView  `json:"settings,omitempty"`
}

type HomeView struct {
	Featured      []catalog.Product `json:"featured"`
	SpecialOffers []catalog.Product `json:"special_offers"`
}

type ListingView struct {
	Query    catalog.Query     `json:"query"`
	Products []catalog.Product `json:"products"`
}

type ProductView struct {
	Product *catalog.Product  `json:"product,omitempty"`
	Similar []catalog.Product `json:"similar,omitempty"`
}

type CartView struct {
	Items       []cart.Item `json:"items"`
	Subtotal    int         `json:"subtotal"`
	DeliveryFee int         `json:"delivery_fee"`
	Total       int         `json:"total"`
}

type CheckoutView struct {
	Items        []cart.Item `json:"items"`
	Subtotal     int         `json:"subtotal"`
	DeliveryFee  int         `json:"delivery_fee"`
	Total        int         `json:"total"`
	Processing   bool        `json:"processing"`
	PaymentError string      `json:"payment_error,omitempty"`
}

type OrderView struct {
	Order orders.Order `json:"order"`
}

type DashboardView struct {
	Featured []catalog.Product `json:"featured"`
	Orders   []orders.Order    `json:"orders"`
}

type SettingsView struct {
	Orders []orders.Order `json:"orders"`
}

// View assembles the render payload for the resolved current page. Resolution
// applies the missing-entity redirects first, so a stale order-details entry
// comes back as the settings view. The whole assembly runs under the
// router's mutation lock, so a snapshot never straddles a cross-store
// sequence such as payment completion.
func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.nav.Resolve(r.cart.Len() == 0)

	view := View{
		Page:           state.Page,
		NavSeq:         state.Seq,
		Version:        r.version,
		Chrome:         chromeFor(state.Page),
		CartCount:      r.cart.Len(),
		SessionPresent: r.sessionPresent,
	}

	switch state.Page {
	case enums.PageHome:
		view.Home = &HomeView{
			Featured:      r.catalog.Featured(r.cfg.Catalog.FeaturedCount),
			SpecialOffers: r.catalog.SpecialOffers(),
		}
	case enums.PageListing:
		view.Listing = &ListingView{
			Query:    state.Listing,
			Products: r.catalog.List(state.Listing),
		}
	case enums.PageProductDetails:
		product := &ProductView{Product: state.Product}
		if state.Product != nil {
			product.Similar = r.catalog.List(catalog.Query{
				Kind:  enums.ListingKindSimilar,
				Value: state.Product.ID,
			})
		}
		view.ProductDetails = product
	case enums.PageCart:
		view.Cart = &CartView{
			Items:       r.cart.Items(),
			Subtotal:    r.cart.Subtotal(),
			DeliveryFee: r.cart.DeliveryFee(),
			Total:       r.cart.Total(),
		}
	case enums.PageCheckout:
		view.Checkout = &CheckoutView{
			Items:        r.cart.Items(),
			Subtotal:     r.cart.Subtotal(),
			DeliveryFee:  r.cart.DeliveryFee(),
			Total:        r.cart.Total(),
			Processing:   r.checkout.InFlight(),
			PaymentError: r.paymentError,
		}
	case enums.PageOrderConfirmation:
		if state.Order != nil {
			view.OrderConfirmation = &OrderView{Order: *state.Order}
		}
	case enums.PageOrderDetails:
		// Resolve guarantees a selection here.
		if state.Order != nil {
			view.OrderDetails = &OrderView{Order: *state.Order}
		}
	case enums.PageBuyerDashboard:
		view.BuyerDashboard = &DashboardView{
			Featured: r.catalog.Featured(r.cfg.Catalog.FeaturedCount),
			Orders:   r.orders.History(),
		}
	case enums.PageSettings:
		view.Settings = &SettingsView{Orders: r.orders.History()}
	case enums.PageLogin, enums.PageRegister, enums.PageOnboarding,
		enums.PageSellerDashboard, enums.PageNotifications,
		enums.PageSellerProfile, enums.PageError:
		// Purely presentational pages carry no extra payload.
	}

	return view
}

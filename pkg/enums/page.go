package enums

import "fmt"

// Page identifies a routable top-level view.
type Page string

const (
	PageHome              Page = "home"
	PageLogin             Page = "login"
	PageRegister          Page = "register"
	PageOnboarding        Page = "onboarding"
	PageBuyerDashboard    Page = "buyer-dashboard"
	PageSellerDashboard   Page = "seller-dashboard"
	PageCart              Page = "cart"
	PageCheckout          Page = "checkout"
	PageOrderConfirmation Page = "order-confirmation"
	PageOrderDetails      Page = "order-details"
	PageNotifications     Page = "notifications"
	PageSettings          Page = "settings"
	PageListing           Page = "listing"
	PageProductDetails    Page = "product-details"
	PageSellerProfile     Page = "seller-profile"
	PageError             Page = "error"
)

var validPages = []Page{
	PageHome,
	PageLogin,
	PageRegister,
	PageOnboarding,
	PageBuyerDashboard,
	PageSellerDashboard,
	PageCart,
	PageCheckout,
	PageOrderConfirmation,
	PageOrderDetails,
	PageNotifications,
	PageSettings,
	PageListing,
	PageProductDetails,
	PageSellerProfile,
	PageError,
}

// String implements fmt.Stringer.
func (p Page) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Page.
func (p Page) IsValid() bool {
	for _, candidate := range validPages {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsAuth reports whether the page belongs to the auth flow, which renders
// without the marketplace navbar.
func (p Page) IsAuth() bool {
	return p == PageLogin || p == PageRegister || p == PageOnboarding
}

// IsDashboard reports whether the page renders inside the dashboard shell.
func (p Page) IsDashboard() bool {
	return p == PageBuyerDashboard || p == PageSellerDashboard
}

// ParsePage converts raw input into a Page.
func ParsePage(value string) (Page, error) {
	for _, candidate := range validPages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid page %q", value)
}

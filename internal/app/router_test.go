package app

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/session"
	"github.com/sokolink/sokolink-app/pkg/config"
	"github.com/sokolink/sokolink-app/pkg/enums"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Session: config.SessionConfig{
			JWTSecret:         "test-secret",
			JWTIssuer:         "sokolink-test",
			ExpirationMinutes: 60,
			PostLoginPage:     "onboarding",
		},
		Checkout: config.CheckoutConfig{
			DeliveryFee:  2000,
			PaymentDelay: 5 * time.Millisecond,
		},
		Catalog: config.CatalogConfig{FeaturedCount: 4},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*Router, *session.Manager) {
	t.Helper()

	sessions, err := session.NewManager(cfg.Session)
	require.NoError(t, err)

	r, err := New(Params{
		Config:   cfg,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Catalog:  catalog.NewProvider(),
		Sessions: sessions,
	})
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	t.Cleanup(r.Close)

	return r, sessions
}

func TestInitialView(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	view := r.View()
	require.Equal(t, enums.PageHome, view.Page)
	require.True(t, view.Chrome.ShowNavbar)
	require.False(t, view.Chrome.Dashboard)
	require.Zero(t, view.CartCount)
	require.False(t, view.SessionPresent)
	require.NotNil(t, view.Home)
	require.Len(t, view.Home.Featured, 4)
}

func TestDemoSeed(t *testing.T) {
	cfg := testConfig()
	cfg.App.DemoData = true
	r, _ := newTestRouter(t, cfg)

	view := r.View()
	require.Equal(t, 2, view.CartCount)

	history := r.Orders()
	require.Len(t, history, 1)
	require.Equal(t, "CMD-OLD-1", history[0].ID)
	require.Equal(t, enums.OrderStatusDelivered, history[0].Status)
}

func TestNavigateUnknownLandsOnErrorPage(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	r.Navigate("unknown-page")
	require.Equal(t, enums.PageError, r.View().Page)

	// Recoverable: a later navigation works normally.
	r.Navigate("home")
	require.Equal(t, enums.PageHome, r.View().Page)
}

func TestNavigateToListing(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.NavigateToListing("category", "tech", ""))

	view := r.View()
	require.Equal(t, enums.PageListing, view.Page)
	require.NotNil(t, view.Listing)
	require.Equal(t, enums.ListingKindCategory, view.Listing.Query.Kind)
	require.Equal(t, "tech", view.Listing.Query.Value)
	require.NotEmpty(t, view.Listing.Products)
	for _, product := range view.Listing.Products {
		require.Equal(t, "Tech", product.Category)
	}

	err := r.NavigateToListing("trending", "x", "")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestNavigateToProduct(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.NavigateToProduct("101"))

	view := r.View()
	require.Equal(t, enums.PageProductDetails, view.Page)
	require.NotNil(t, view.ProductDetails)
	require.NotNil(t, view.ProductDetails.Product)
	require.Equal(t, "101", view.ProductDetails.Product.ID)
	for _, product := range view.ProductDetails.Similar {
		require.NotEqual(t, "101", product.ID)
	}

	err := r.NavigateToProduct("999")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCartScenarioTotals(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.AddToCart("101"))
	r.Navigate("cart")

	view := r.View()
	require.NotNil(t, view.Cart)
	require.Equal(t, 45000, view.Cart.Subtotal)
	require.Equal(t, 2000, view.Cart.DeliveryFee)
	require.Equal(t, 47000, view.Cart.Total)
	require.Equal(t, 1, view.CartCount)

	r.UpdateCartQuantity("101", 2)
	require.Equal(t, 3, r.View().Cart.Items[0].Quantity)

	r.RemoveFromCart("101")
	require.Zero(t, r.View().CartCount)

	err := r.AddToCart("does-not-exist")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCheckoutCompletes(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.AddToCart("101"))
	r.Navigate("checkout")

	pending, err := r.StartCheckout(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(pending.PaymentCode, "SOKO-"))

	<-pending.Done()

	view := r.View()
	require.Equal(t, enums.PageOrderConfirmation, view.Page)
	require.NotNil(t, view.OrderConfirmation)
	require.Zero(t, view.CartCount)

	history := r.Orders()
	require.Len(t, history, 1)
	require.Equal(t, view.OrderConfirmation.Order.ID, history[0].ID)
	require.Equal(t, 47000, history[0].Total)
	require.Equal(t, enums.OrderStatusPending, history[0].Status)
	require.Equal(t, pending.PaymentCode, history[0].PaymentCode)
}

func TestOrderSnapshotSurvivesCartMutations(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.AddToCart("101"))
	pending, err := r.StartCheckout(context.Background())
	require.NoError(t, err)
	<-pending.Done()

	placed := r.Orders()[0]

	// Refill and clear the live cart; the placed order must not move.
	require.NoError(t, r.AddToCart("102"))
	r.ClearCart()

	again := r.Orders()[0]
	require.Equal(t, placed.Total, again.Total)
	require.Len(t, again.Items, 1)
	require.Equal(t, "101", again.Items[0].ID)
}

func TestNavigationAwayCancelsPayment(t *testing.T) {
	cfg := testConfig()
	cfg.Checkout.PaymentDelay = time.Second
	r, _ := newTestRouter(t, cfg)

	require.NoError(t, r.AddToCart("101"))
	r.Navigate("checkout")

	pending, err := r.StartCheckout(context.Background())
	require.NoError(t, err)

	r.Navigate("home")
	<-pending.Done()

	require.Equal(t, enums.PageHome, r.View().Page)
	require.Empty(t, r.Orders())
	require.Equal(t, 1, r.View().CartCount)
}

func TestConcurrentAddDuringPaymentCompletion(t *testing.T) {
	cfg := testConfig()
	cfg.Checkout.PaymentDelay = 0
	r, _ := newTestRouter(t, cfg)

	// A cart add racing payment completion must land either before the
	// order snapshot (shipping with the order) or after the cart clear
	// (staying in the cart). It must never vanish between the two.
	for i := 0; i < 200; i++ {
		r.ClearCart()
		require.NoError(t, r.AddToCart("101"))

		pending, err := r.StartCheckout(context.Background())
		require.NoError(t, err)

		added := make(chan struct{})
		go func() {
			_ = r.AddToCart("103")
			close(added)
		}()

		<-pending.Done()
		<-added

		inOrder := 0
		for _, item := range r.Orders()[0].Items {
			if item.ID == "103" {
				inOrder += item.Quantity
			}
		}

		r.Navigate("cart")
		inCart := 0
		if view := r.View(); view.Cart != nil {
			for _, item := range view.Cart.Items {
				if item.ID == "103" {
					inCart += item.Quantity
				}
			}
		}

		require.Equal(t, 1, inOrder+inCart, "iteration %d: concurrent add lost between order snapshot and cart clear", i)
	}
}

func TestPaymentErrorClearedWhenLeavingCheckout(t *testing.T) {
	cfg := testConfig()
	cfg.Checkout.PaymentFailureRate = 1
	r, _ := newTestRouter(t, cfg)

	require.NoError(t, r.AddToCart("101"))
	r.Navigate("checkout")

	pending, err := r.StartCheckout(context.Background())
	require.NoError(t, err)
	<-pending.Done()

	view := r.View()
	require.Equal(t, enums.PageCheckout, view.Page)
	require.NotNil(t, view.Checkout)
	require.NotEmpty(t, view.Checkout.PaymentError)

	// Leaving checkout dismisses the declined banner; coming back starts
	// clean.
	r.Navigate("home")
	r.Navigate("checkout")

	view = r.View()
	require.Equal(t, enums.PageCheckout, view.Page)
	require.NotNil(t, view.Checkout)
	require.Empty(t, view.Checkout.PaymentError)
}

func TestCheckoutWithEmptyCartRedirectsToCart(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	r.Navigate("checkout")
	require.Equal(t, enums.PageCart, r.View().Page)

	_, err := r.StartCheckout(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestStaleOrderDetailsRedirectsToSettings(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	r.Navigate("order-details")

	view := r.View()
	require.Equal(t, enums.PageSettings, view.Page)
	require.NotNil(t, view.Settings)
}

func TestNavigateToOrderShowsDetails(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	require.NoError(t, r.AddToCart("101"))
	pending, err := r.StartCheckout(context.Background())
	require.NoError(t, err)
	<-pending.Done()
	placed := r.Orders()[0]

	require.NoError(t, r.NavigateToOrder(placed.ID))

	view := r.View()
	require.Equal(t, enums.PageOrderDetails, view.Page)
	require.NotNil(t, view.OrderDetails)
	require.Equal(t, placed.ID, view.OrderDetails.Order.ID)

	err = r.NavigateToOrder("CMD-00000")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSessionAppearingOnLoginMovesToOnboarding(t *testing.T) {
	r, sessions := newTestRouter(t, testConfig())

	r.Navigate("login")
	require.False(t, r.View().Chrome.ShowNavbar)

	_, err := sessions.SignIn(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	view := r.View()
	require.Equal(t, enums.PageOnboarding, view.Page)
	require.True(t, view.SessionPresent)

	require.NoError(t, sessions.SignOut(context.Background()))
	view = r.View()
	require.False(t, view.SessionPresent)
	// Sign-out never forces navigation.
	require.Equal(t, enums.PageOnboarding, view.Page)
}

func TestSessionPresentAtStartupMovesLoginToHome(t *testing.T) {
	cfg := testConfig()
	sessions, err := session.NewManager(cfg.Session)
	require.NoError(t, err)
	_, err = sessions.SignIn(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	r, err := New(Params{
		Config:   cfg,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Catalog:  catalog.NewProvider(),
		Sessions: sessions,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)

	r.Navigate("login")
	require.NoError(t, r.Start(context.Background()))

	view := r.View()
	require.Equal(t, enums.PageHome, view.Page)
	require.True(t, view.SessionPresent)
}

func TestWatchDeliversLatestVersion(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	ch, stop := r.Watch()
	defer stop()

	require.NoError(t, r.AddToCart("101"))
	require.NoError(t, r.AddToCart("102"))

	select {
	case v := <-ch:
		require.Positive(t, v)
		require.LessOrEqual(t, v, r.Version())
	case <-time.After(time.Second):
		t.Fatal("expected watch notification")
	}
}

func TestChromeRules(t *testing.T) {
	tests := []struct {
		page      enums.Page
		navbar    bool
		footer    bool
		dashboard bool
	}{
		{enums.PageHome, true, true, false},
		{enums.PageLogin, false, false, false},
		{enums.PageRegister, false, false, false},
		{enums.PageOnboarding, false, false, false},
		{enums.PageBuyerDashboard, true, false, true},
		{enums.PageSellerDashboard, true, false, true},
		{enums.PageCart, true, true, false},
		{enums.PageError, true, true, false},
	}

	for _, tt := range tests {
		chrome := chromeFor(tt.page)
		require.Equal(t, tt.navbar, chrome.ShowNavbar, "navbar for %s", tt.page)
		require.Equal(t, tt.footer, chrome.ShowFooter, "footer for %s", tt.page)
		require.Equal(t, tt.dashboard, chrome.Dashboard, "dashboard for %s", tt.page)
	}
}

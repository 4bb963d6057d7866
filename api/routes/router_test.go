package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sokolink/sokolink-app/internal/app"
	"github.com/sokolink/sokolink-app/internal/catalog"
	"github.com/sokolink/sokolink-app/internal/session"
	"github.com/sokolink/sokolink-app/pkg/config"
	"github.com/sokolink/sokolink-app/pkg/enums"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

func newTestHandler(t *testing.T) (http.Handler, *app.Router) {
	t.Helper()

	cfg := &config.Config{
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

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	pageRouter, err := app.New(app.Params{
		Config:   cfg,
		Logger:   logg,
		Catalog:  catalog.NewProvider(),
		Sessions: sessions,
	})
	if err != nil {
		t.Fatalf("page router: %v", err)
	}
	if err := pageRouter.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(pageRouter.Close)

	return NewRouter(cfg, logg, pageRouter, sessions), pageRouter
}

func decodeView(t *testing.T, body io.Reader) app.View {
	t.Helper()
	var envelope struct {
		Data app.View `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return envelope.Data
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := resp.Header().Get("X-SokoLink-Env"); env != "test" {
		t.Fatalf("unexpected env header %q", env)
	}
}

func TestViewEndpointReturnsHome(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/view", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeView(t, resp.Body)
	if view.Page != enums.PageHome {
		t.Fatalf("unexpected page %q", view.Page)
	}
	if view.Home == nil {
		t.Fatal("expected home payload")
	}
}

func TestShoppingFlowOverHTTP(t *testing.T) {
	handler, pageRouter := newTestHandler(t)

	post := func(path, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp
	}

	resp := post("/v1/cart/items", `{"product_id":"101"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("add to cart: expected 200 got %d", resp.Code)
	}

	resp = post("/v1/navigation", `{"page":"cart"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("navigate: expected 200 got %d", resp.Code)
	}
	view := decodeView(t, resp.Body)
	if view.Cart == nil || view.Cart.Total != 47000 {
		t.Fatalf("unexpected cart view %+v", view.Cart)
	}

	resp = post("/v1/checkout", "")
	if resp.Code != http.StatusAccepted {
		t.Fatalf("checkout: expected 202 got %d", resp.Code)
	}

	deadline := time.After(time.Second)
	for pageRouter.View().Page != enums.PageOrderConfirmation {
		select {
		case <-deadline:
			t.Fatal("payment never settled")
		case <-time.After(time.Millisecond):
		}
	}

	orders := pageRouter.Orders()
	if len(orders) != 1 || orders[0].Total != 47000 {
		t.Fatalf("unexpected order history %+v", orders)
	}
}

func TestWatchEndpointSeesNavigation(t *testing.T) {
	handler, _ := newTestHandler(t)

	done := make(chan app.View, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/v1/view/watch?after=0", nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		done <- decodeView(t, resp.Body)
	}()

	req := httptest.NewRequest(http.MethodPost, "/v1/navigation", strings.NewReader(`{"page":"settings"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("navigate: expected 200 got %d", resp.Code)
	}

	select {
	case view := <-done:
		if view.Version == 0 {
			t.Fatalf("expected advanced version, got %d", view.Version)
		}
	case <-time.After(time.Second):
		t.Fatal("watch never returned")
	}
}

func TestLoginMovesRouterToOnboarding(t *testing.T) {
	handler, pageRouter := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/navigation", strings.NewReader(`{"page":"login"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("navigate: expected 200 got %d", resp.Code)
	}

	body := `{"email":"buyer@example.com","password":"hunter2"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", resp.Code)
	}

	view := pageRouter.View()
	if view.Page != enums.PageOnboarding {
		t.Fatalf("expected onboarding, got %q", view.Page)
	}
	if !view.SessionPresent {
		t.Fatal("expected session present")
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

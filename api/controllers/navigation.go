package controllers

import (
	"net/http"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/api/validators"
	"github.com/sokolink/sokolink-app/internal/app"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// NavigationService is the slice of the page router the navigation endpoints
// need.
type NavigationService interface {
	Navigate(name string)
	NavigateToListing(kind, value, label string) error
	NavigateToProduct(productID string) error
	NavigateToOrder(orderID string) error
	View() app.View
}

type navigateRequest struct {
	Page string `json:"page" validate:"required"`
}

// Navigate moves to a named page and returns the resulting view. Unknown
// page names are not an HTTP error; they land on the in-app error page.
func Navigate(svc NavigationService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		var payload navigateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.Navigate(payload.Page)
		responses.WriteSuccess(w, svc.View())
	}
}

type navigateListingRequest struct {
	Kind  string `json:"kind" validate:"required"`
	Value string `json:"value" validate:"required"`
	Label string `json:"label"`
}

// NavigateListing stashes a listing query and moves to the listing page.
func NavigateListing(svc NavigationService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		var payload navigateListingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.NavigateToListing(payload.Kind, payload.Value, payload.Label); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.View())
	}
}

type navigateProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// NavigateProduct selects a product and moves to its detail page.
func NavigateProduct(svc NavigationService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		var payload navigateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.NavigateToProduct(payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.View())
	}
}

type navigateOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// NavigateOrder selects a placed order and moves to its detail page.
func NavigateOrder(svc NavigationService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		var payload navigateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.NavigateToOrder(payload.OrderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.View())
	}
}

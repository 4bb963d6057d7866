package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/api/validators"
	"github.com/sokolink/sokolink-app/internal/app"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// CartService is the slice of the page router the cart endpoints need.
type CartService interface {
	AddToCart(productID string) error
	UpdateCartQuantity(id string, delta int)
	RemoveFromCart(id string)
	ClearCart()
	View() app.View
}

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartAdd puts a catalogue product in the cart.
func CartAdd(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddToCart(payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.View())
	}
}

type cartQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartUpdateQuantity adjusts a line's quantity by a signed delta, clamped at
// one. Unknown lines are a no-op.
func CartUpdateQuantity(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		svc.UpdateCartQuantity(chi.URLParam(r, "itemId"), payload.Delta)
		responses.WriteSuccess(w, svc.View())
	}
}

// CartRemove drops a line from the cart.
func CartRemove(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		svc.RemoveFromCart(chi.URLParam(r, "itemId"))
		responses.WriteSuccess(w, svc.View())
	}
}

// CartClear empties the cart.
func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		svc.ClearCart()
		responses.WriteSuccess(w, svc.View())
	}
}

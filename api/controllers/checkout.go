package controllers

import (
	"context"
	"net/http"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/internal/app"
	"github.com/sokolink/sokolink-app/internal/checkout"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// CheckoutService is the slice of the page router the checkout endpoint
// needs.
type CheckoutService interface {
	StartCheckout(ctx context.Context) (*checkout.Pending, error)
	View() app.View
}

type checkoutStartResponse struct {
	PaymentCode string   `json:"payment_code"`
	View        app.View `json:"view"`
}

// CheckoutStart begins the simulated payment for the current cart. The
// payment settles after the configured delay; clients observe the outcome
// through the view watch. A second call while one is pending is rejected.
func CheckoutStart(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		pending, err := svc.StartCheckout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, checkoutStartResponse{
			PaymentCode: pending.PaymentCode,
			View:        svc.View(),
		})
	}
}

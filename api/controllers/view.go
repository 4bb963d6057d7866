package controllers

import (
	"net/http"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/api/validators"
	"github.com/sokolink/sokolink-app/internal/app"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// ViewService is the slice of the page router the view endpoints need.
type ViewService interface {
	View() app.View
	Version() uint64
	Watch() (<-chan uint64, func())
}

// ViewFetch returns the current render payload.
func ViewFetch(svc ViewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "view service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.View())
	}
}

// ViewWatch long-polls until the state version moves past the caller's
// `after` watermark, then returns the fresh view. A closed connection simply
// returns whatever is current; clients compare versions to decide whether to
// redraw.
func ViewWatch(svc ViewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "view service unavailable"))
			return
		}

		after, err := validators.ParseQueryUint(r, "after", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ch, stop := svc.Watch()
		defer stop()

		for svc.Version() <= after {
			select {
			case <-r.Context().Done():
				responses.WriteSuccess(w, svc.View())
				return
			case <-ch:
			}
		}

		responses.WriteSuccess(w, svc.View())
	}
}

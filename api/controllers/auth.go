package controllers

import (
	"context"
	"net/http"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/api/validators"
	"github.com/sokolink/sokolink-app/internal/session"
	pkgerrors "github.com/sokolink/sokolink-app/pkg/errors"
	"github.com/sokolink/sokolink-app/pkg/logger"
)

// SessionService is the slice of the session manager the auth endpoints
// need.
type SessionService interface {
	SignIn(ctx context.Context, email string) (*session.Session, error)
	SignOut(ctx context.Context) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// AuthLogin signs the caller in. Credential verification is mocked: any
// well-formed email and password pair is accepted.
func AuthLogin(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, err := svc.SignIn(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionResponse{Token: s.Token, Email: s.Email})
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthRegister creates an account and signs the caller in. Account storage
// is mocked out, so registration reduces to a sign-in with a stricter
// payload.
func AuthRegister(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		s, err := svc.SignIn(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{Token: s.Token, Email: s.Email})
	}
}

// AuthLogout clears the current session. Logging out twice is not an error.
func AuthLogout(svc SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		if err := svc.SignOut(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	Email string
	JTI   string
}

// SessionClaims represents the typed JWT handed back to the view layer. The
// application core treats the signed token as opaque session presence.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenClaims is the typed payload carried by the session cookie.
// It identifies the in-memory session only; the upstream access token never
// leaves the server side.
type SessionTokenClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	// gin context keys
	ContextUserID         = "user_id"
	ContextIdentitySource = "identity_source"

	HeaderUserID = "X-User-Id"

	SourceToken  = "token"
	SourceHeader = "header"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// signs and verifies HS256 bearer tokens.
// a Verifier with an empty secret accepts no tokens.
type Verifier struct {
	secret []byte
}

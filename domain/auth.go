package domain

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess TokenType = "access"
)

// JwtClaims carries the authenticated staff identity. Sub is the user ID.
type JwtClaims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// TokenVerifier resolves an access token into its claims.
type TokenVerifier interface {
	Verify(tokenType TokenType, tokenStr string) (*JwtClaims, error)
}

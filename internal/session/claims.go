package session

import (
	"github.com/golang-jwt/jwt/v4"
)

// Claims is what the client reads from the access token
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// parseClaims decodes the token payload without checking its signature.
// Only the server holds the signing key.
func parseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "zlangd"
const tokenLifetime = time.Hour

// generateToken issues a JWT for the single zlangd operator account.
func generateToken(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"sub": "operator",
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

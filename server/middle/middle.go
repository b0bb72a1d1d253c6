// Package middle contains middleware for use with the zlangd server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zlang-project/zsema/server/result"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by RequireAuth.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
)

const issuer = "zlangd"

// RequireAuth returns middleware that rejects any request without a valid
// Bearer JWT signed with secret. zlangd has exactly one account, so unlike a
// multi-user server there is no subject to look up in a DB: a token is either
// validly signed by this server's secret, or it isn't.
func RequireAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			tok, err := getBearerToken(req)
			if err == nil {
				_, err = jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
					return secret, nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))
			}

			if err != nil {
				r := result.Unauthorized("", err.Error())
				time.Sleep(unauthDelay)
				r.WriteResponse(w)
				return
			}

			ctx := context.WithValue(req.Context(), AuthLoggedIn, true)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])
	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return tok, nil
}

// DontPanic returns a Middleware that recovers a panicking handler and writes
// an HTTP-500 instead of crashing the server.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.InternalServerError("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()))
		r.WriteResponse(w)
		return true
	}
	return false
}

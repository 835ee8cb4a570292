package authmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lfonseca/moneta/internal/http/respond"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}

// FromContext returns the Principal stored by the middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Verify returns middleware that requires a valid HS256 token, read from the
// access_token cookie for browser requests or the Authorization header for
// API clients. Token issuance lives elsewhere; this side only verifies.
func Verify(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := extractToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			var c claims

			_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, Principal{
				UserID: c.UserID,
				Email:  c.Email,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

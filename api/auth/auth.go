// Package auth authenticates registry callers. The registry core trusts the
// principal produced here as given; this package is the boundary to the
// external wallet/session system, modeled as HS256 bearer tokens whose
// subject claim is the caller's hex address.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
)

type contextKey struct{}

var principalKey contextKey

// ErrNoPrincipal is returned when a handler runs without an authenticated
// principal in its context.
var ErrNoPrincipal = errors.New("no authenticated principal in request context")

// Middleware validates the Bearer token on each request and injects the
// caller principal into the request context. Requests with a missing or
// invalid token are rejected with 401 before reaching the handler.
func Middleware(secret []byte, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				log.Debug("rejected bearer token", "err", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil {
				http.Error(w, "invalid token subject", http.StatusUnauthorized)
				return
			}
			principal, err := interfaces.NewPrincipalFromHex(subject)
			if err != nil {
				http.Error(w, "invalid token subject", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated caller injected by
// Middleware.
func PrincipalFromContext(ctx context.Context) (interfaces.Principal, error) {
	principal, ok := ctx.Value(principalKey).(interfaces.Principal)
	if !ok {
		return interfaces.Principal{}, ErrNoPrincipal
	}
	return principal, nil
}

// NewToken issues an HS256 bearer token for the given principal. Used by
// the CLI and by tests; production deployments are expected to mint tokens
// in their session layer.
func NewToken(secret []byte, principal interfaces.Principal, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": principal.String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/actorvote/internal/auth"
	"github.com/pkordes/actorvote/internal/domain"
)

// TokenVerifier turns a raw bearer token into a caller identity.
// *auth.TokenService satisfies it.
type TokenVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// ErrorWriter renders an error response; handler.WriteError satisfies it.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// NewAuthenticator returns a middleware that resolves the caller identity
// from the Authorization header and stores it with auth.WithIdentity.
//
// A request without the header continues as anonymous so public actions
// still work; whether anonymous is enough is decided per action later.
// A header that is present but malformed, expired or badly signed is
// rejected with 401 immediately.
func NewAuthenticator(v TokenVerifier, fail ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				fail(w, r, fmt.Errorf("%w: malformed Authorization header", domain.ErrUnauthenticated))
				return
			}

			id, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				fail(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

package httpapi

import (
	"net/http"

	"github.com/petorang/superpet-api/internal/platform/auth/token"
)

// NewSessionMiddleware resolves the caller's identity from the auth cookie.
//
// It never rejects a request: a missing cookie, a tampered token, and an
// expired token all resolve to the same anonymous state, and handlers that
// need an identity respond 401 themselves. Collapsing the failure modes keeps
// attackers from distinguishing "no cookie" from "bad cookie".
func NewSessionMiddleware(codec *token.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, ok := codec.Verify(c.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

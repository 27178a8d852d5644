package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/intake/pkg/slogx"
)

const (
	MsgMissingBearer = "Missing or invalid authorization header"
	MsgInvalidBearer = "Invalid or expired token"
)

// TokenVerifier decides whether a presented bearer token grants access.
type TokenVerifier interface {
	Verify(token string) bool
}

// BearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. ok is false when the header is absent, uses another scheme or
// carries an empty token.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireBearer rejects requests without a bearer token accepted by v.
// Both failure modes answer 403.
func RequireBearer(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, MsgMissingBearer)
				return
			}

			if !v.Verify(token) {
				slogx.FromContext(r.Context()).Warn("bearer token rejected")
				writeBearerError(w, MsgInvalidBearer)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusForbidden, desc)
}

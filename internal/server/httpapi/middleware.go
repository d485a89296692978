package httpapi

import (
	"context"
	"net/http"
	"strings"

	"carvault/internal/common"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the verified caller attached to the request context by the
// authenticator middleware.
type Identity struct {
	UserID   string
	Username string
}

// authenticator is the single choke point resolving a bearer credential
// into a verified identity. Any failure (missing header, malformed scheme,
// bad signature, expiry) surfaces to callers as one undifferentiated 401;
// the specific cause is only logged.
func (s *Server) authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "reason", err.Error())
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}

		identity := Identity{UserID: claims.UserID, Username: claims.Username}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext extracts the identity attached by the authenticator.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
)

// Identity is the caller resolved at the auth boundary: one id, one role.
// Handlers branch on the role instead of probing record shapes.
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

type contextKey struct{}

var identityKey contextKey

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the caller identity placed by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireRole rejects requests whose bearer token is missing, invalid, or
// resolves to a different role.
func RequireRole(tokens *auth.Manager, role string) func(http.Handler) http.Handler {
	return RequireAny(tokens, role)
}

// RequireAny admits any of the given roles.
func RequireAny(tokens *auth.Manager, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Validate(bearerToken(r))
			if err != nil {
				http.Error(w, "Not authorized, token failed", http.StatusUnauthorized)
				return
			}

			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				http.Error(w, "Not authorized, token failed", http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{ID: userID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

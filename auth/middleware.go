package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/lakonic/noted/webutil"
)

type contextKey struct{}

var userIDKey contextKey

const bearerPrefix = "Bearer "

// Authenticator returns middleware that verifies the Authorization header
// and stores the verified user ID in the request context. Requests with a
// missing, malformed, or expired token are rejected with 401 before any
// handler runs.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(webutil.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				webutil.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			userID, err := VerifyToken(strings.TrimPrefix(header, bearerPrefix), secret)
			if err != nil {
				webutil.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying a verified user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the verified user ID stored by Authenticator, or the
// empty string when the request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// WithSessionUser assigns each browser session a stable anonymous user id and
// puts it on the request context. The id is the caller's identity for follow
// lists and admin checks; the core packages only ever see it as an explicit
// parameter.
func WithSessionUser(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionManager.GetString(r.Context(), "userID")
			if userID == "" {
				userID = uuid.NewString()
				sessionManager.Put(r.Context(), "userID", userID)
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(UserIDKey)
	if val == nil {
		return "", false
	}

	id, ok := val.(string)
	return id, ok
}

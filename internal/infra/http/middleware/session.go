package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/fieldsales/internal/entity"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

type contextKey string

const sessionUserKey contextKey = "session_user"

// Session resolves the caller identity set by the auth front (an API
// gateway in production) into the request context. The service itself
// never authenticates; it only needs {userId, role, assignedSiteId}.
func Session(users usecase.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				writeUnauthorized(w, "missing X-User-ID header")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if usecase.IsNotFoundError(err) {
					writeUnauthorized(w, "unknown user")
					return
				}
				http.Error(w, "failed to resolve session", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(sessionUserKey).(*entity.User)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}

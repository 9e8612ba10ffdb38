package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lans/llm-answer-watcher/internal/auth/session"
	"github.com/lans/llm-answer-watcher/internal/db/models"
)

type contextKey string

const userKey contextKey = "currentUser"

// RequireUser extracts the bearer token, resolves it to an account and puts
// the account in the request context. Requests without a resolvable account
// get 401 with a WWW-Authenticate challenge.
func RequireUser(gateway *session.Gateway) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := bearerToken(r)
			if bearer == "" {
				unauthorized(w)
				return
			}

			user, err := gateway.CurrentUser(bearer)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the account placed by RequireUser, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"detail": "Could not validate credentials"}`))
}

package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/mira/chat-relay/internal/domain"
	"github.com/mira/chat-relay/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth guards protected routes. Every failure — missing header, bad token,
// unknown subject — gets the same generic 401 so the response does not leak
// which check failed; the cause is only logged.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				unauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				unauthorized(w)
				return
			}

			user, err := authService.AuthenticateToken(r.Context(), parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

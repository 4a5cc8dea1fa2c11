package middleware

import (
	"context"
	"net/http"

	"github.com/nkiryanov/guestbook/internal/handlers/render"
	"github.com/nkiryanov/guestbook/internal/handlers/userctx"
	"github.com/nkiryanov/guestbook/internal/models"
)

// Message shown when a protected route is hit without a valid token
const loginRequiredMessage = "You need to login to access this page"

type tokenResolver interface {
	UserByToken(ctx context.Context, token string) (models.User, error)
}

// Auth gates protected routes behind the Authorization header
// The header carries the raw access token, no scheme prefix
// Exactly one store lookup per request; downstream never runs on failure
func Auth(resolver tokenResolver) func(http.Handler) http.Handler {
	type forbiddenResponse struct {
		Message string `json:"message"`
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				render.JSONWithStatus(w, forbiddenResponse{Message: loginRequiredMessage}, http.StatusForbidden)
				return
			}

			user, err := resolver.UserByToken(r.Context(), token)
			if err != nil {
				render.JSONWithStatus(w, forbiddenResponse{Message: loginRequiredMessage}, http.StatusForbidden)
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

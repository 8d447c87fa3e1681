package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/domain/entity"
	"github.com/vobe/voicedesk/infrastructure/http/response"
)

type contextKey string

const authUserKey contextKey = "auth_user"

type AuthMiddleware struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthMiddleware(authUseCase inbound.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// RequireAuth resolves the bearer token to its owning user and stores the
// user in the request context.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		user, err := m.authUseCase.VerifyToken(r.Context(), parts[1])
		if err != nil {
			response.Unauthorized(w, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(authUserKey).(*entity.User); ok {
		return user
	}
	return nil
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MadinaDev2107/Group-Manager/internal/response"
	"github.com/MadinaDev2107/Group-Manager/internal/utils"
)

type contextKey string

const (
	ContextKeyRole    contextKey = "role"
	ContextKeySubject contextKey = "subject"
)

// apiKeyFromRequest ambil key dari header apikey, atau Authorization: Bearer <key>
func apiKeyFromRequest(r *http.Request) (string, bool) {
	if key := strings.TrimSpace(r.Header.Get("apikey")); key != "" {
		return key, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// Authenticate validates the backend API key and stores its role in the context.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := apiKeyFromRequest(r)
			if !ok {
				response.Unauthorized(w, "API key not found, send apikey header or Authorization: Bearer <key>")
				return
			}

			claims, err := utils.ValidateAPIKey(key, secret)
			if err != nil {
				response.Unauthorized(w, "API key is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyRole, claims.Role)
			ctx = context.WithValue(ctx, ContextKeySubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole memastikan key memiliki salah satu dari role yang diizinkan
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRoleFromContext(r.Context())
			if role == "" {
				response.Unauthorized(w, "Role not found in API key")
				return
			}

			for _, allowed := range roles {
				if strings.EqualFold(role, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "API key is not allowed to modify collections")
		})
	}
}

func GetRoleFromContext(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyRole).(string)
	return val
}

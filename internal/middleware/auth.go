package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fxledger/backend/internal/authz"
	"github.com/fxledger/backend/internal/services"
	"go.uber.org/zap"
)

// TokenParser resolves a bearer token into the caller it was issued to.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (authz.Subject, error)
}

type tokenKey struct{}

// TokenFrom returns the raw bearer token of an authenticated request.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller in the request context.
func AuthMiddleware(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "Invalid authorization header format")
				return
			}
			token := parts[1]

			subject, err := parser.ParseToken(r.Context(), token)
			if err != nil {
				var serr *services.Error
				if errors.As(err, &serr) && serr.Kind == services.KindUnauthorized {
					unauthorized(w, serr.Message)
					return
				}
				zap.L().Error("Token validation failed", zap.Error(err))
				services.WriteJSON(w, http.StatusInternalServerError, services.ErrorResponse{
					Error: "Internal server error",
					Kind:  services.KindUnexpected,
				})
				return
			}

			ctx := authz.WithSubject(r.Context(), subject)
			ctx = context.WithValue(ctx, tokenKey{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only callers holding role.
func RequireRole(role authz.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := authz.SubjectFrom(r.Context())
			if !ok {
				unauthorized(w, "Unauthorized")
				return
			}
			if !subject.HasRole(role) {
				services.WriteJSON(w, http.StatusForbidden, services.ErrorResponse{
					Error: "Insufficient permissions to perform this action",
					Kind:  services.KindForbidden,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	services.WriteJSON(w, http.StatusUnauthorized, services.ErrorResponse{
		Error: message,
		Kind:  services.KindUnauthorized,
	})
}

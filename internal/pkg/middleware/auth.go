package middleware

import (
	"context"
	"net/http"
	"strings"

	"gocatalog/internal/api/response"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/token"
)

type claimsKey struct{}

// TokenValidator é o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

// Authenticate valida o header "Authorization: Bearer <token>" e anexa as claims ao contexto.
func Authenticate(tokens TokenValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Missing or malformed authorization token."))
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				log.WithContext(r.Context()).Warn("token rejected", map[string]interface{}{"error": err.Error()})
				response.Error(w, r, log, apperror.NewUnauthorizedError("Invalid or expired token."))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = logger.WithFields(ctx, map[string]interface{}{"subject": claims.Subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve as claims anexadas por Authenticate.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*token.Claims)
	return claims, ok
}

// RequireRole exige uma das roles informadas; deve rodar depois de Authenticate.
func RequireRole(log logger.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Authorization required."))
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, r, log, apperror.NewForbiddenError("Access denied."))
		})
	}
}

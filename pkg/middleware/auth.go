package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyTrigger contextKey = "trigger"
)

// AuthMiddleware exige um bearer token de cron válido. Só é aplicado às
// rotas de disparo; as leituras públicas não passam por aqui.
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token is required", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				var authErr *authenticating.AuthError
				switch {
				case errors.Is(err, authenticating.ErrMissingSecret):
					apiErrors.WriteError(w, apiErrors.ErrTriggerDisabled, "Disparo manual desabilitado", nil)
				case errors.As(err, &authErr):
					logrus.WithError(err).Warn("Token de disparo recusado")
					apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
				default:
					apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Invalid token", nil)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyTrigger, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TriggerFromContext retorna as claims do disparo autenticado.
func TriggerFromContext(ctx context.Context) (*domain.TriggerClaims, bool) {
	claims, ok := ctx.Value(ContextKeyTrigger).(*domain.TriggerClaims)
	return claims, ok
}

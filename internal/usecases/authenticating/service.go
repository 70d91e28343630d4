// Package authenticating emite e valida os tokens que autorizam disparos
// manuais dos crons.
package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

type Authenticator interface {
	GenerateToken(issuer string) (string, error)
	ValidateToken(tokenString string) (*domain.TriggerClaims, error)
}

type Service struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		secret: cfg.Auth.CronSecret,
		ttl:    cfg.Auth.TokenTTL,
		now:    time.Now,
	}
}

// GenerateToken assina um token HS256 com escopo de cron. TTL zero gera um
// token sem expiração, como o segredo fixo dos agendadores externos.
func (s *Service) GenerateToken(issuer string) (string, error) {
	if s.secret == "" {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}
	if issuer == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "issuer é obrigatório")
	}

	now := s.now()
	claims := domain.TriggerClaims{
		Issuer: issuer,
		Scope:  domain.TriggerScopeCron,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.TriggerClaims, error) {
	if s.secret == "" {
		return nil, NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.TriggerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.TriggerClaims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if claims.Scope != domain.TriggerScopeCron {
		return nil, NewAuthError(ErrInsufficientScope, apiErrors.ErrInsufficientPrivilege, claims.Scope)
	}

	return claims, nil
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newAuthService(secret string) authenticating.Authenticator {
	cfg := &config.Config{}
	cfg.Auth = config.Auth{CronSecret: secret, TokenTTL: time.Hour}
	return authenticating.NewService(cfg)
}

func TestAuthMiddleware(t *testing.T) {
	auth := newAuthService("segredo")
	validToken, err := auth.GenerateToken("teste")
	require.NoError(t, err)

	tests := []struct {
		name           string
		service        authenticating.Authenticator
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Token válido passa adiante",
			service:        auth,
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Sem header",
			service:        auth,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Sem prefixo Bearer",
			service:        auth,
			header:         validToken,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Token inválido",
			service:        auth,
			header:         "Bearer abc.def.ghi",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "Segredo não configurado",
			service:        newAuthService(""),
			header:         "Bearer " + validToken,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   apiErrors.ErrTriggerDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenIssuer string
			handler := AuthMiddleware(tt.service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := TriggerFromContext(r.Context())
				if ok {
					seenIssuer = claims.Issuer
				}
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodPost, "/v1/cron/discovery/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedCode)
			} else {
				assert.Equal(t, "teste", seenIssuer)
			}
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://app.example.com"})(okHandler())

	t.Run("Origem permitida recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/c1/leaderboard", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Origem desconhecida não recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestLoggingAndPanic(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	chain := alice.New(LoggingMiddleware(), LogPanicMiddleware()).Then(panicking)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rr := httptest.NewRecorder()

	chain.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(correlationHeader))
	assert.Contains(t, rr.Body.String(), apiErrors.ErrInternalServer)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500 µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "12 ms", formatDuration(12*time.Millisecond))
	assert.Equal(t, "1.50 s", formatDuration(1500*time.Millisecond))
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/creator-campaign-api/internal/api/handler"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/internal/scheduler/mocks"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	leaderboardmocks "github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard/mocks"
	"github.com/vfg2006/creator-campaign-api/pkg/apiErrors"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestHandler(t *testing.T) (http.Handler, *leaderboardmocks.MockLeaderboardService, *mocks.MockRunner) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"https://app.example.com"}
	cfg.Auth = config.Auth{CronSecret: "segredo", TokenTTL: time.Hour}

	ctrl := gomock.NewController(t)
	leaderboardService := leaderboardmocks.NewMockLeaderboardService(ctrl)
	discovery := mocks.NewMockRunner(ctrl)
	hydration := mocks.NewMockRunner(ctrl)

	h := NewHandler(cfg, okPinger{}, leaderboardService, authenticating.NewService(cfg), handler.CronJobServices{
		Discovery: discovery,
		Hydration: hydration,
	})

	return h, leaderboardService, discovery
}

func TestNewHandler(t *testing.T) {
	t.Run("Leaderboard é público e recebe CORS", func(t *testing.T) {
		h, leaderboardService, _ := newTestHandler(t)
		leaderboardService.EXPECT().GetLeaderboardSnapshot(gomock.Any(), "c1").Return(&domain.LeaderboardResponse{
			CampaignID:  "c1",
			Leaderboard: []domain.LeaderboardRow{},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/c1/leaderboard", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, rr.Header().Get("X-Correlation-ID"))
	})

	t.Run("Preflight não exige token", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodOptions, "/v1/cron/discovery/run", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Cron sem token é rejeitado antes do scheduler", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/cron/discovery/run", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Rota desconhecida", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), apiErrors.ErrResourceNotFound)
	})

	t.Run("Método não permitido", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/v1/campaigns/c1/leaderboard", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		assert.Contains(t, rr.Body.String(), apiErrors.ErrMethodNotAllowed)
	})

	t.Run("Healthcheck", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

package handler

import (
	"net/http"

	"github.com/vfg2006/creator-campaign-api/internal/api/handler/router"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard"
	"github.com/vfg2006/creator-campaign-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Leaderboard(service leaderboard.LeaderboardService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns/:id/leaderboard",
			Method:  http.MethodGet,
			Handler: GetCampaignLeaderboard(service),
		},
	}
}

func CronJobs(services CronJobServices, authenticator authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authenticator)},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AuthMiddleware(authenticator)},
		},
	}
}

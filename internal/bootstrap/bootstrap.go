// Package bootstrap monta as dependências compartilhadas pela API e pela CLI.
package bootstrap

import (
	"context"

	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x"
	"github.com/vfg2006/creator-campaign-api/infrastructure/integrator/x/xclient"
	"github.com/vfg2006/creator-campaign-api/infrastructure/lock"
	"github.com/vfg2006/creator-campaign-api/infrastructure/repository"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/scheduler"
	"github.com/vfg2006/creator-campaign-api/internal/scoring"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/leaderboard"
)

type App struct {
	Config *config.Config
	DB     *postgres.Connection

	CampaignRepo repository.CampaignRepository
	AuthorRepo   repository.TrackedAuthorRepository
	PostRepo     repository.TrackedPostRepository

	Source        x.XIntegrator
	Leaderboard   leaderboard.LeaderboardService
	Authenticator authenticating.Authenticator
	Discovery     *scheduler.DiscoveryService
	Hydration     *scheduler.HydrationService

	redis rueidis.Client
}

// New conecta no PostgreSQL e, se configurado, no Redis. Sem REDIS_ADDR as
// execuções rodam sem lock entre instâncias.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	app := &App{
		Config:        cfg,
		DB:            conn,
		CampaignRepo:  repository.NewCampaignRepository(conn),
		AuthorRepo:    repository.NewTrackedAuthorRepository(conn),
		PostRepo:      repository.NewTrackedPostRepository(conn),
		Source:        x.New(cfg, xclient.NewClient(cfg)),
		Authenticator: authenticating.NewService(cfg),
	}

	app.Leaderboard = leaderboard.NewLeaderboardService(repository.NewLeaderboardRepository(conn))

	var locker lock.Locker = lock.NoopLocker{}
	if cfg.Redis.Addr != "" {
		client, err := lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		app.redis = client
		locker = lock.NewRedisLocker(client, cfg.Redis.LockTTL)
		logrus.WithField("addr", cfg.Redis.Addr).Info("Lock por campanha usando Redis")
	} else {
		logrus.Warn("REDIS_ADDR não configurado, execuções concorrentes não serão serializadas entre instâncias")
	}

	engine := scoring.NewDefaultEngine()

	app.Discovery = scheduler.NewDiscoveryService(
		app.CampaignRepo,
		app.AuthorRepo,
		app.PostRepo,
		app.Source,
		app.Leaderboard,
		locker,
		engine,
		cfg,
	)

	app.Hydration = scheduler.NewHydrationService(
		app.PostRepo,
		app.Source,
		app.Leaderboard,
		locker,
		engine,
		cfg,
	)

	return app, nil
}

func (a *App) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if err := a.DB.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}

package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/internal/api"
	"github.com/vfg2006/creator-campaign-api/internal/bootstrap"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar dependências")
	}
	defer app.Close()

	// Inicia os agendadores em background
	if err := app.Discovery.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de descoberta")
	}

	if err := app.Hydration.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reidratação")
	}

	server, err := api.New(
		cfg,
		app.DB,
		app.Leaderboard,
		app.Authenticator,
		app.Discovery,
		app.Hydration,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

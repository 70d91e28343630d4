package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/creator-campaign-api/infrastructure/migration"
	"github.com/vfg2006/creator-campaign-api/internal/bootstrap"
	"github.com/vfg2006/creator-campaign-api/internal/config"
	"github.com/vfg2006/creator-campaign-api/internal/domain"
	"github.com/vfg2006/creator-campaign-api/internal/scheduler"
	"github.com/vfg2006/creator-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/creator-campaign-api/pkg/log"
	"github.com/vfg2006/creator-campaign-api/pkg/utils"
)

const (
	kindDiscovery = "discovery"
	kindHydration = "hydration"
)

type authorInput struct {
	ID          string
	Handle      string
	DisplayName string
	AvatarURL   string
	Followers   int64
	Disabled    bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Setup(cfg.App.LogLevel)
	return cfg, nil
}

func withApp(ctx context.Context, fn func(app *bootstrap.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(app)
}

func runScheduler(ctx context.Context, kind, campaignID string) error {
	return withApp(ctx, func(app *bootstrap.App) error {
		var runner scheduler.Runner = app.Discovery
		if kind == kindHydration {
			runner = app.Hydration
		}

		var (
			reports []*domain.RunReport
			err     error
		)
		if campaignID == "" {
			reports, err = runner.RunAll(ctx)
		} else {
			var report *domain.RunReport
			report, err = runner.Run(ctx, campaignID)
			if report != nil {
				reports = append(reports, report)
			}
		}

		if printErr := printJSON(reports); printErr != nil {
			return printErr
		}
		return err
	})
}

func runLeaderboard(ctx context.Context, campaignID string, jsonOutput bool, limit int) error {
	return withApp(ctx, func(app *bootstrap.App) error {
		snapshot, err := app.Leaderboard.GetLeaderboardSnapshot(ctx, campaignID)
		if err != nil {
			return fmt.Errorf("get leaderboard: %w", err)
		}

		if limit > 0 && len(snapshot.Leaderboard) > limit {
			snapshot.Leaderboard = snapshot.Leaderboard[:limit]
		}

		if jsonOutput {
			return printJSON(snapshot)
		}

		if len(snapshot.Leaderboard) == 0 {
			fmt.Println("No scores yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tAUTHOR\tSCORE\tCHANGE")
		for _, row := range snapshot.Leaderboard {
			fmt.Fprintf(w, "%d\t@%s\t%.4f\t%+d\n",
				row.Rank, row.Handle, utils.RoundWithFourDecimalPlaces(row.Score), row.RankChange)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nupdated %s\n", snapshot.LastUpdate.Format(time.RFC3339))
		return nil
	})
}

func runAuthorsAdd(ctx context.Context, input authorInput) error {
	return withApp(ctx, func(app *bootstrap.App) error {
		author := &domain.TrackedAuthor{
			ID:          input.ID,
			Handle:      input.Handle,
			DisplayName: input.DisplayName,
			AvatarURL:   input.AvatarURL,
			Followers:   input.Followers,
			Enabled:     !input.Disabled,
		}

		if err := app.AuthorRepo.SaveOrUpdateAuthor(ctx, author); err != nil {
			return fmt.Errorf("save author: %w", err)
		}

		fmt.Printf("author %s (@%s) saved, enabled=%t\n", author.ID, author.Handle, author.Enabled)
		return nil
	})
}

func runMigrate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer conn.Close()

	applied, err := migration.Apply(ctx, conn)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		fmt.Println("Schema is up to date.")
		return nil
	}

	for _, name := range applied {
		fmt.Printf("applied %s\n", name)
	}
	return nil
}

func runToken(issuer string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := authenticating.NewService(cfg).GenerateToken(issuer)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func printJSON(v any) error {
	out, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

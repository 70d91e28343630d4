package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Operate creator campaigns: runs, leaderboards, roster and migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(discoveryCmd())
	root.AddCommand(hydrationCmd())
	root.AddCommand(leaderboardCmd())
	root.AddCommand(authorsCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(tokenCmd())

	return root
}

func discoveryCmd() *cobra.Command {
	var campaignID string

	cmd := &cobra.Command{
		Use:   "discovery",
		Short: "Run one bounded discovery pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduler(cmd.Context(), kindDiscovery, campaignID)
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign ID (default: every configured or active campaign)")
	return cmd
}

func hydrationCmd() *cobra.Command {
	var campaignID string

	cmd := &cobra.Command{
		Use:   "hydration",
		Short: "Run one bounded hydration pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduler(cmd.Context(), kindHydration, campaignID)
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign ID (default: every campaign with due posts)")
	return cmd
}

func leaderboardCmd() *cobra.Command {
	var (
		campaignID string
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the current leaderboard of a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd.Context(), campaignID, jsonOutput, limit)
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "campaign ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "max rows to show (0 = all)")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func authorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Manage the tracked author roster",
	}

	cmd.AddCommand(authorsAddCmd())
	return cmd
}

func authorsAddCmd() *cobra.Command {
	var input authorInput

	cmd := &cobra.Command{
		Use:   "add <author-id>",
		Short: "Add or update a tracked author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.ID = args[0]
			return runAuthorsAdd(cmd.Context(), input)
		},
	}

	cmd.Flags().StringVar(&input.Handle, "handle", "", "public handle")
	cmd.Flags().StringVar(&input.DisplayName, "name", "", "display name")
	cmd.Flags().StringVar(&input.AvatarURL, "avatar", "", "avatar URL")
	cmd.Flags().Int64Var(&input.Followers, "followers", 0, "follower count snapshot")
	cmd.Flags().BoolVar(&input.Disabled, "disabled", false, "keep the author out of discovery")
	_ = cmd.MarkFlagRequired("handle")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func tokenCmd() *cobra.Command {
	var issuer string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP cron triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(issuer)
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "campaignctl", "name of the caller recorded in the token")
	return cmd
}

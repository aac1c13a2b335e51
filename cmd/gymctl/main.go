// Package main provides gymctl, an operator CLI for inspecting the gym
// roster and technique catalogue without starting the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"combatbible/gymdesk/internal/app"
	"combatbible/gymdesk/internal/combo"
	"combatbible/gymdesk/internal/config"
	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/repository/seed"
	"combatbible/gymdesk/internal/service"
)

var (
	configDir string

	classesDay  int
	classesDate string

	libraryOrigin   string
	libraryCategory string
	libraryQuery    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gymctl",
		Short:        "Inspect the gymdesk roster and technique library",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding config.yaml and .env")

	rootCmd.AddCommand(newClassesCmd())
	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newSeedCmd())
	return rootCmd
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List classes for a weekday or a calendar date",
		Args:  cobra.NoArgs,
		RunE:  runClassesCmd,
	}
	cmd.Flags().IntVar(&classesDay, "day", -1, "weekday, 0=Sunday..6=Saturday")
	cmd.Flags().StringVar(&classesDate, "date", "", "calendar date (YYYY-MM-DD); honours validity ranges")
	return cmd
}

func runClassesCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	roster, closeRepos, err := openRoster(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	var klasses []domain.Klass
	var title string
	switch {
	case classesDate != "":
		klasses, err = roster.OnDate(ctx, classesDate)
		title = "Classes on " + classesDate
	case classesDay >= 0:
		if classesDay > 6 {
			return fmt.Errorf("--day must be between 0 and 6, got %d", classesDay)
		}
		klasses, err = roster.ByWeekday(ctx, time.Weekday(classesDay))
		title = "Classes on " + time.Weekday(classesDay).String()
	default:
		klasses, err = roster.List(ctx)
		domain.SortByStartTime(klasses)
		title = "All classes"
	}
	if err != nil {
		return err
	}
	return renderClasses(cmd.OutOrStdout(), title, klasses)
}

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List technique packs",
		Args:  cobra.NoArgs,
		RunE:  runLibraryCmd,
	}
	cmd.Flags().StringVar(&libraryOrigin, "origin", "", "official or private")
	cmd.Flags().StringVar(&libraryCategory, "category", "", "exact category")
	cmd.Flags().StringVar(&libraryQuery, "query", "", "title substring")
	return cmd
}

func runLibraryCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	switch domain.Origin(libraryOrigin) {
	case "", domain.OriginOfficial, domain.OriginPrivate:
	default:
		return fmt.Errorf("--origin must be official or private, got %q", libraryOrigin)
	}

	// Listing never generates combos, so the static generator is enough.
	lib, err := service.NewLibraryService(ctx, repos.Techniques, cfg.Catalog.GymID, combo.StaticGenerator{Count: cfg.AI.Variations}, nil)
	if err != nil {
		return err
	}
	packs := lib.List(service.LibraryFilter{
		Origin:   domain.Origin(libraryOrigin),
		Category: libraryCategory,
		Query:    libraryQuery,
	})
	return renderPacks(cmd.OutOrStdout(), packs)
}

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with catalogue seed files",
	}
	seedCmd.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Validate a TOML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			return renderSeedSummary(cmd.OutOrStdout(), args[0], data)
		},
	})
	return seedCmd
}

func openRoster(ctx context.Context) (service.RosterService, func(), error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.NewRosterService(repos.Klasses), repos.Close, nil
}

// Package main provides the entry point for the flightsearch CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/flightsearch/internal/app"
	"github.com/five82/flightsearch/internal/logtail"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flightsearch: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "flightsearch",
		Short: "Search airports and keep a list of favorite routes",
		Long: `flightsearch - airport search and favorite routes

Type to search airports by IATA code or name. Select an airport to list
every flight from it and star the routes you want to keep. A blank search
shows your saved routes.

Examples:
  flightsearch
  flightsearch --db ~/flights.db
  flightsearch seed airports.json
  flightsearch favorites
  flightsearch logs -n 100 --level warn`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/flightsearch/config.toml)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (overrides config)")
	root.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (overrides config)")

	root.AddCommand(newSeedCmd(&opts))
	root.AddCommand(newFavoritesCmd(&opts))
	root.AddCommand(newLogsCmd(&opts))
	return root
}

func newSeedCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <airports.json>",
		Short: "Replace the airport dataset",
		Long: `Replace the airport dataset with a JSON file of the form

  [{"iata_code": "SEA", "name": "Seattle-Tacoma International Airport", "passengers": 50887260}]

Saved favorite routes are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dataset: %w", err)
			}
			defer f.Close()

			n, err := app.Seed(cmd.Context(), *opts, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d airports\n", n)
			return nil
		},
	}
}

func newFavoritesCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "Print saved favorite routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs, err := app.ListFavorites(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			if len(favs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorite routes yet")
				return nil
			}
			for _, fav := range favs {
				fmt.Fprintln(cmd.OutOrStdout(), fav.Route().String())
			}
			return nil
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := app.TailLog(*opts, lines, level)
			if err != nil {
				return err
			}
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, fmt.Sprintf("number of log lines to read (max %d)", logtail.MaxLines))
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level (debug, info, warn, error)")
	return cmd
}

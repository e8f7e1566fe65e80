package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"animeapi/provider/internal/config"
	"animeapi/provider/internal/container"
	"animeapi/provider/internal/domain"
	"animeapi/provider/internal/logger"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configDir string
	app       *container.Container
	filters   domain.FetchFilters
)

var rootCmd = &cobra.Command{
	Use:           "animeapi",
	Short:         "Browse the AnimeApi catalog through its mirrors",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Setup(cfg.Log)
		log.Debug("Configuration loaded successfully")

		app, err = container.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one page of catalog summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := app.Provider.Fetch(cmd.Context(), filters)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Fetch the detail record of one anime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := app.Provider.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(detail)
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Fetch the detail record of a random anime",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := app.Provider.Random(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(detail)
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream <id>",
	Short: "Print the torrent URL for a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := app.Provider.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		movie, ok := detail.(*domain.MovieDetail)
		if !ok {
			return fmt.Errorf("anime %s is a %s, not a movie", args[0], detail.MediaType())
		}

		language, _ := cmd.Flags().GetString("language")
		quality, _ := cmd.Flags().GetString("quality")
		url, err := app.Provider.ResolveStream(movie, language, quality)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

var descriptorCmd = &cobra.Command{
	Use:   "descriptor",
	Short: "Print the provider descriptor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(app.Provider.Descriptor())
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Store every catalog detail in Postgres, resuming from the last synced page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.ConnectStorage(cmd.Context()); err != nil {
			return err
		}
		report, err := app.Service.Sync(cmd.Context(), filters)
		if report != nil {
			if printErr := printJSON(report); printErr != nil && err == nil {
				err = printErr
			}
		}
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "directory holding config.yaml")

	for _, cmd := range []*cobra.Command{fetchCmd, syncCmd} {
		cmd.Flags().StringVarP(&filters.Keywords, "keywords", "k", "", "full-text search keywords")
		cmd.Flags().StringVarP(&filters.Genre, "genre", "g", "", "genre filter")
		cmd.Flags().StringVarP(&filters.Sorter, "sorter", "s", "", "sort field (popularity keeps the default)")
		cmd.Flags().StringVarP(&filters.Order, "order", "o", "", "sort order")
	}
	fetchCmd.Flags().IntVarP(&filters.Page, "page", "p", 1, "page number")

	streamCmd.Flags().StringP("language", "l", "", "torrent language (defaults to anime_api.language)")
	streamCmd.Flags().StringP("quality", "q", "", "torrent quality (defaults to anime_api.quality)")

	rootCmd.AddCommand(fetchCmd, detailCmd, randomCmd, streamCmd, descriptorCmd, syncCmd)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// executeContext runs the root command, cancelling on interrupt.
func executeContext() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		if closeErr := app.Close(); closeErr != nil {
			log.Warnf("Failed to shut down cleanly: %v", closeErr)
		}
	}
	return err
}

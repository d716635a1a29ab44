package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/pkg/logger"
	"github.com/awesomepeople/people/api/internal/repository"
	"github.com/awesomepeople/people/api/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	store      string
	sqlitePath string
	format     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "peoplectl",
		Short: "Administer the people store",
		Long: `peoplectl runs people operations directly against the configured store,
without going through the HTTP API.

Configuration is read the same way as the server (config.yaml and environment
variables such as STORE_DRIVER and SQLITE_PATH); flags override it.

Examples:
  peoplectl add "Ada Lovelace"
  peoplectl list --sort ascending
  peoplectl random --format json
  peoplectl delete 3 --store sqlite --sqlite-path ./people.db`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("peoplectl version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.store, "store", "", "Store driver: sqlite, postgres or memory (default from STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database path (default from SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", formatHuman, "Output format (human, json)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newRandomCmd(opts),
	)

	return rootCmd
}

// session is an open store with the services built on top of it
type session struct {
	queries *service.QueryService
	random  *service.RandomService
	close   func()
}

// openSession loads configuration, applies flag overrides and opens the store.
// policy overrides RANDOM_POLICY when not empty.
func (o *rootOptions) openSession(cmd *cobra.Command, policy string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.store != "" {
		cfg.Store.Driver = strings.ToLower(o.store)
	}
	if o.sqlitePath != "" {
		cfg.SQLite.Path = o.sqlitePath
	}
	if policy != "" {
		cfg.Random.Policy = policy
	}

	log := logger.New(logger.Config{
		Level:  o.logLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := repository.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	log.Debug("session opened", zap.String("store", cfg.Store.Driver))

	return &session{
		queries: service.NewQueryService(store, nil, log),
		random:  service.NewRandomService(store, domain.ParseRandomPolicy(cfg.Random.Policy), log),
		close: func() {
			closeStore()
			_ = log.Sync()
		},
	}, nil
}

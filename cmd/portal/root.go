package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal"
	"github.com/kailas-cloud/portal/internal/config"
	logpkg "github.com/kailas-cloud/portal/internal/logger"
)

var (
	env    string
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Portal search, recommendation and SEO service",
	Long: `portal runs the search & relevance core of the personal portal.

Configuration is read from config/<env>.yaml; ${VAR:-default} references
are expanded from the environment.

Example usage:
  portal serve                         # Start the HTTP API
  portal seed                          # Load demo content
  portal tags recount                  # Repair tag usage counts
  portal slug generate "Go语言入门"     # Print a slug for a title
  portal seo analyze -t "Title" post.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", config.GetEnv(), "configuration environment (local, dev, prod)")
}

func initConfig() error {
	var err error
	cfg, err = config.Load(env)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err = logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	return nil
}

// openClient builds a portal client from the loaded configuration.
func openClient(ctx context.Context) (*portal.Client, error) {
	opts := []portal.Option{
		portal.WithDatabase(cfg.Database.Path),
		portal.WithJapanese(cfg.Tokenizer.Japanese),
		portal.WithExtraStopWords(cfg.Tokenizer.ExtraStopWords...),
		portal.WithSlugDefaults(cfg.Slug.MaxLength, cfg.Slug.UsePinyin),
		portal.WithSuggestLimit(cfg.Search.SuggestLimit),
		portal.WithLogger(logger),
	}
	if cfg.Cache.Enabled {
		opts = append(opts,
			portal.WithRedisCache(cfg.Cache.Addrs, cfg.Cache.Password, time.Duration(cfg.Cache.TTLSec)*time.Second),
			portal.WithCacheKeyPrefix(cfg.Cache.KeyPrefix),
			portal.WithCacheReadinessTimeout(time.Duration(cfg.Cache.ReadinessTimeout)*time.Second),
		)
	}

	client, err := portal.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("open portal: %w", err)
	}
	return client, nil
}

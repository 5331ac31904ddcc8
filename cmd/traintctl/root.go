package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/PY-Dev20/traint-5x5/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type commandContext struct {
	dbURL    string
	redisURL string
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "traintctl",
		Short:         "Catalog administration: migrations, seeding and cache maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load .env: %w", err)
			}
			logger.Init(logger.Options{Level: logLevel, Writer: cmd.ErrOrStderr()})
			if ctx.dbURL == "" {
				ctx.dbURL = strings.TrimSpace(os.Getenv("DB_URL"))
			}
			if ctx.redisURL == "" {
				ctx.redisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.dbURL, "db-url", "", "PostgreSQL connection string (defaults to DB_URL)")
	rootCmd.PersistentFlags().StringVar(&ctx.redisURL, "redis-url", "", "Redis connection string (defaults to REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}

func (c *commandContext) requireDB() (string, error) {
	if c.dbURL == "" {
		return "", fmt.Errorf("DB_URL environment variable or --db-url is required")
	}
	return c.dbURL, nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/PY-Dev20/traint-5x5/internal/cache"
	"github.com/PY-Dev20/traint-5x5/internal/database"
	"github.com/PY-Dev20/traint-5x5/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var file string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load exercises, coaches and programs from a YAML catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := seed.LoadFile(file)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d exercises, %d programs\n",
					file, len(catalog.Exercises), len(catalog.Programs))
				return nil
			}

			dbURL, err := ctx.requireDB()
			if err != nil {
				return err
			}
			if err := database.ConnectDB(cmd.Context(), dbURL, database.PoolOptions{MaxConns: 2, MinConns: 1}); err != nil {
				return err
			}
			defer database.CloseDB()

			summary, err := seed.Load(cmd.Context(), database.DB, catalog)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %d users, %d categories, %d exercises, %d coaches, %d programs (%d sessions)\n",
				summary.Users, summary.Categories, summary.Exercises,
				summary.Coaches, summary.Programs, summary.Sessions,
			)

			if ctx.redisURL == "" {
				return nil
			}
			removed, err := flushCatalogCache(cmd, ctx.redisURL)
			if err != nil {
				slog.Warn("seeded catalog but cache flush failed", "error", err)
				return nil
			}
			slog.Info("catalog cache flushed", "keys", removed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed/catalog.yaml", "Catalog YAML file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing")
	return cmd
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Catalog view cache maintenance",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Delete every cached catalog view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.redisURL == "" {
				return fmt.Errorf("REDIS_URL environment variable or --redis-url is required")
			}
			removed, err := flushCatalogCache(cmd, ctx.redisURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached views\n", removed)
			return nil
		},
	})
	return cacheCmd
}

func flushCatalogCache(cmd *cobra.Command, redisURL string) (int, error) {
	client, err := cache.Connect(cmd.Context(), redisURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	return cache.NewViewCache(client, 0, slog.Default()).Flush(cmd.Context())
}

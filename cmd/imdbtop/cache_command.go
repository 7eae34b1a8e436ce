package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imdb-top250/internal/cache"
)

func newCacheCommand(f *flags) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the scrape cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached scrapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			c, err := cache.New(cfg.Cache.Dir, cfg.CacheTTL())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			removed, err := c.InvalidateAll()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached scrape(s) from %s\n", removed, cfg.Cache.Dir)
			return nil
		},
	})

	return cacheCmd
}

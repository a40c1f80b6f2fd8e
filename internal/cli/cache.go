package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/intentia/internal/cache"
	"github.com/ppiankov/intentia/internal/model"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scored-label cache",
	Long: `Manage the cache of scorer replies under cache.dir.

Memory entries live only for one process, so these commands act on the
disk layer.`,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired and corrupt cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		removed, err := pruneCache(cfg.Cache)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d cache entries from %s\n", removed, cfg.Cache.Dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cache entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		c := cache.New(cfg.Cache)
		if c == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled")
			return nil
		}
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared cache %s\n", cfg.Cache.Dir)
		return nil
	},
}

// pruneCache removes expired disk entries. A disabled or memory-only cache
// has nothing to prune.
func pruneCache(cfg model.CacheConfig) (int, error) {
	p, ok := cache.New(cfg).(cache.Pruner)
	if !ok {
		return 0, nil
	}

	removed, err := p.Prune()
	if err != nil {
		return removed, fmt.Errorf("prune cache: %w", err)
	}
	return removed, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

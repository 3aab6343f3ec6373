package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/cache"
	"github.com/milestone-dev/milestone/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := cache.Open(ctx, c.cfg.Cache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			count, err := cache.Clear(ctx, ch)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached artifacts", count)
			if c.cfg.Cache.Backend == config.CacheFile {
				printDetail("Directory: %s", c.cfg.Cache.Dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.cfg.Cache.Backend {
			case config.CacheRedis:
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s/%d %s*\n", c.cfg.Cache.RedisAddr, c.cfg.Cache.RedisDB, c.cfg.Cache.Prefix)
			case config.CacheNone:
				printInfo("Caching is disabled")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), c.cfg.Cache.Dir)
			}
			return nil
		},
	}
}

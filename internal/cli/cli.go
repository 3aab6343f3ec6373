package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/buildinfo"
	"github.com/milestone-dev/milestone/pkg/cache"
	"github.com/milestone-dev/milestone/pkg/config"
	"github.com/milestone-dev/milestone/pkg/observability"
	"github.com/milestone-dev/milestone/pkg/pipeline"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "milestone"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level. Debug level also routes render,
// cache, HTTP and store events to the logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "MileStone keeps a catalogue of the projects you have built",
		Long:         `MileStone is a personal project catalogue. It records what you built, when, with which stack and where it lives, and renders cards, chips and a timeline as SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/milestone/config.toml)")

	// Register all subcommands
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.sectionCommand())
	root.AddCommand(c.itemCommand())
	root.AddCommand(c.timelineCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.resumeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// openStore opens the configured project store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store again.
func (c *CLI) withStore(ctx context.Context, fn func(s store.Store) error) error {
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// resolve finds a project by ID or unique prefix.
func resolve(ctx context.Context, s store.Store, ref string) (*project.Project, error) {
	return store.Resolve(ctx, s, ref)
}

// newRunner creates a pipeline runner for CLI use. An unreachable cache
// backend degrades to rendering without a cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	var ch cache.Cache = cache.NewNullCache()
	if !noCache {
		opened, err := cache.Open(ctx, c.cfg.Cache)
		if err != nil {
			c.Logger.Warn("cache unavailable, rendering without it", "error", err)
		} else {
			ch = opened
		}
	}
	r := pipeline.NewRunner(ch, c.keyer(), c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r
}

// keyer scopes cache keys by build version so that an upgraded renderer
// never serves artifacts drawn by an older one.
func (c *CLI) keyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

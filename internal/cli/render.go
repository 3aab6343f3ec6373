package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/pipeline"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// renderOpts holds the command-line flags shared by the render subcommands.
type renderOpts struct {
	output   string  // output file; stdout when empty
	width    float64 // viewport width in pixels
	spacing  float64 // gap between chips
	fontSize float64 // base font size
	field    string  // chips: tech or tags
	detailed bool    // graph: status and dates in node labels
	noCache  bool    // bypass the artifact cache entirely
	refresh  bool    // re-render and overwrite the cached artifact
}

// renderCommand creates the render command for generating SVG artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render cards, chips, the timeline or the stack graph to SVG",
		Long: `Render SVG artifacts.

Artifacts are cached by content, so rendering an unchanged project again is
served from the cache. Use --refresh to redraw or --no-cache to bypass the
cache altogether.`,
	}

	cmd.AddCommand(c.renderProjectCommand(pipeline.KindCard, "card <id>", "Render a project card"))
	cmd.AddCommand(c.renderProjectCommand(pipeline.KindChips, "chips <id>", "Render tech or tag chips"))
	cmd.AddCommand(c.renderAllCommand(pipeline.KindTimeline, "timeline", "Render the project timeline"))
	cmd.AddCommand(c.renderAllCommand(pipeline.KindGraph, "graph", "Render projects and their technologies as a graph"))

	return cmd
}

func (c *CLI) renderProjectCommand(kind pipeline.Kind, use, short string) *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				req := c.renderRequest(cmd, kind, &opts)
				req.Project = p
				if kind == pipeline.KindChips && opts.field != "" {
					f, err := project.ParseField(opts.field)
					if err != nil {
						return err
					}
					req.Field = f
				}
				return c.runRender(cmd, req, &opts)
			})
		},
	}
	c.addRenderFlags(cmd, &opts)
	if kind == pipeline.KindChips {
		cmd.Flags().StringVar(&opts.field, "field", "tech", "list to draw: tech or tags")
	}
	return cmd
}

func (c *CLI) renderAllCommand(kind pipeline.Kind, use, short string) *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				all, err := s.List(ctx)
				if err != nil {
					return err
				}
				req := c.renderRequest(cmd, kind, &opts)
				req.Projects = all
				return c.runRender(cmd, req, &opts)
			})
		},
	}
	c.addRenderFlags(cmd, &opts)
	if kind == pipeline.KindGraph {
		cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show status and dates in node labels")
	}
	return cmd
}

func (c *CLI) addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	fs.Float64Var(&opts.width, "width", 0, fmt.Sprintf("viewport width (default %v from config)", c.cfg.Render.Width))
	fs.Float64Var(&opts.spacing, "spacing", 0, "gap between chips (default from config)")
	fs.Float64Var(&opts.fontSize, "font-size", 0, "base font size (default from config)")
	fs.BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	fs.BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite the cached artifact")
}

// renderRequest builds a request, falling back to the configured render
// settings for flags the user did not set.
func (c *CLI) renderRequest(cmd *cobra.Command, kind pipeline.Kind, opts *renderOpts) pipeline.Request {
	req := pipeline.Request{
		Kind:     kind,
		Width:    c.cfg.Render.Width,
		Spacing:  c.cfg.Render.Spacing,
		FontSize: c.cfg.Render.FontSize,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	}
	changed := cmd.Flags().Changed
	if changed("width") {
		req.Width = opts.width
	}
	if changed("spacing") {
		req.Spacing = opts.spacing
	}
	if changed("font-size") {
		req.FontSize = opts.fontSize
	}
	return req
}

// runRender renders req through the cache and writes the result to the
// output file or stdout.
func (c *CLI) runRender(cmd *cobra.Command, req pipeline.Request, opts *renderOpts) error {
	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx))
	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	spinner := newRenderSpinner(ctx, cmd.ErrOrStderr(), req)
	if opts.output != "" {
		spinner.start()
	}
	data, cached, err := runner.Render(ctx, req)
	spinner.stop()
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", req.Kind))
	printFile(opts.output)
	printRenderStats(len(data), cached)
	return nil
}

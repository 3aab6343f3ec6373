package cli

import (
	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/api"
	"github.com/milestone-dev/milestone/pkg/store"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON and SVG API over HTTP",
		Long: `Serve the JSON and SVG API over HTTP.

Requests under /api must carry "Authorization: Bearer <token>" when
server.api_token (or MILESTONE_API_TOKEN) is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			return c.withStore(ctx, func(s store.Store) error {
				if c.cfg.Server.APIToken == "" {
					printWarning("No API token configured, the API is open to anyone who can reach %s", addr)
				}
				srv := api.NewServer(s, runner,
					api.WithLogger(c.Logger),
					api.WithToken(c.cfg.Server.APIToken),
					api.WithRenderDefaults(c.cfg.Render),
				)
				printInfo("Listening on %s", StyleLink.Render(addr))
				return srv.Run(ctx, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without the artifact cache")
	return cmd
}

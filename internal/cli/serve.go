package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/internal/server"
	"github.com/matzehuels/wiregraph/pkg/script"
)

// serveCommand creates the serve command, which exposes a live graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, preload string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live graph over HTTP",
		Long: `Serve a live graph over HTTP.

Routes:
  GET  /graph        graph document (JSON)
  GET  /graph/nets   nets
  GET  /graph/hit    hit test at ?x=&y=[&tol=]
  POST /graph/steps  apply one step (JSON) and return its delta
  GET  /graph.dot    Graphviz DOT
  GET  /graph.svg    rendered SVG
  GET  /version      build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng := c.newEngine(cfg)

			if preload != "" {
				s, err := script.Load(preload)
				if err != nil {
					return err
				}
				deltas, err := s.Run(eng)
				if err != nil {
					return err
				}
				printSuccess("Preloaded %d steps from %s", len(deltas), preload)
			}

			srv := server.New(eng, server.Options{Renderer: c.newRenderer(cfg), Logger: c.Logger})
			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&preload, "script", "", "script to run before serving")

	return cmd
}

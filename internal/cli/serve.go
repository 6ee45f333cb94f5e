package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flighttree/pkg/server"
)

// serveCommand runs the HTTP API until the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			logger := c.Logger
			if path := c.cfg.Server.LogFile; path != "" {
				fileLogger, closer := newFileLogger(path, c.Logger.GetLevel())
				defer closer.Close()
				logger = fileLogger
				printInfo("Logging to %s", path)
			}

			store, release, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer release()

			runner := c.newRunner()
			runner.Logger = logger
			runner.Text = nil

			srv := server.New(store, runner, logger, server.Options{SamplePath: c.cfg.Sample.Path})
			printSuccess("Serving on %s", StyleHighlight.Render(addr))
			printDetail("Store backend: %s", c.cfg.Store.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

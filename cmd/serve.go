/*
Copyright © 2025 Department of Biodiversity, Conservation and Attractions

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbca-wa/wastd/internal/ioapi"
	"github.com/dbca-wa/wastd/internal/ioworkflow"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getServeCmd() *cobra.Command {
	var port int
	var allow bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API",
		Long: `Serve starts the JSON API of gazettals and workflows.

Transitions through the API are disabled unless server.allow_transitions
is set in the configuration or --allow-transitions is given.

Endpoints:
  GET  /api/v1/ping
  GET  /api/v1/version
  GET  /api/v1/gazettals/taxon/:id
  GET  /api/v1/gazettals/community/:id
  GET  /api/v1/:kind/:id/transitions
  POST /api/v1/:kind/:id/transitions
  GET  /api/v1/:kind/:id/history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("allow-transitions") {
				cfg.Server.AllowTransitions = allow
			}
			return runServe()
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"port to listen on, overrides server.port")
	serveCmd.Flags().BoolVar(&allow, "allow-transitions", false,
		"accept transitions through POST requests")
	return serveCmd
}

func runServe() error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op, err := connect(ctx)
	if err != nil {
		return fail(err)
	}
	defer op.Close()

	svc := ioworkflow.New(op.GORM(), cfg)
	srv := ioapi.New(svc, cfg)

	gn.Info("Serving <em>%s</em> on %s", describeDB(), cfg.Server.Addr())
	if err = srv.Run(ctx); err != nil {
		return fail(err)
	}
	return nil
}

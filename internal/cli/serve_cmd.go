package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /submit_query",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return fmt.Errorf("http server is not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.DefaultAddr, "listen address")
	return cmd
}

// runServe runs the server and a provider preflight side by side. The
// preflight only warns; the server keeps running without a provider.
func runServe(ctx context.Context, app *App, addr string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Serve(gctx, addr)
	})

	if app.Preflight != nil {
		g.Go(func() error {
			if !app.Preflight(gctx) {
				app.logger().WarnContext(gctx, "completion provider unreachable; replies will be degraded until it is up")
			}
			return nil
		})
	}

	return g.Wait()
}

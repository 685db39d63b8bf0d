package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/pokedata/render"
	"github.com/spektr-org/pokedata/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.load()
			if err != nil {
				return err
			}

			srv := server.New(view, server.Options{
				Addr:            a.cfg.Server.Addr,
				CORSOrigins:     a.cfg.Server.CORSOrigins,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
				ChartSize:       render.Size{Width: a.cfg.Charts.Width, Height: a.cfg.Charts.Height},
				Limits:          a.cfg.Limits,
				Logger:          a.logger,
			})

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				if ctx.Err() != nil {
					a.logger.Info().Msg("shutdown signal received")
				}
				return nil
			})
			return g.Wait()
		},
	}
}

// contextOrBackground keeps commands runnable outside Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

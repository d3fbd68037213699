package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/biolimbo/lip-sync-engine/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over a websocket endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensure(); err != nil {
				return err
			}
			defer ctx.close()

			eng, err := ctx.newEngine()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = ctx.cfg.Serve.Addr
			}
			srv := server.New(server.Config{
				Addr:         addr,
				WriteTimeout: ctx.cfg.Serve.WriteTimeout,
			}, eng, ctx.logger)

			signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(signalCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: from config)")
	return cmd
}

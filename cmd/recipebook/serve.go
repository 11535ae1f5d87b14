// ABOUTME: Serve command running the HTTP save endpoint.
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM and flushes pending pushes.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Serve POST /api/recipes/save and GET /health until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = env.cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := httpapi.New(env.engine, httpapi.Options{
			Addr:        addr,
			CORSOrigins: env.cfg.Server.CORSOrigins,
			RateLimit:   env.cfg.Server.RateLimit,
			Burst:       env.cfg.Server.Burst,
			Logger:      env.logger,
		})
		return server.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

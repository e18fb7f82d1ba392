package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ims/internal/core/routes"
	"ims/internal/middleware"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local console API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host, _ := cmd.Flags().GetString("host")
			if host == "" {
				host = a.container.Config.AppHost
			}
			log := a.container.Logger

			middleware.SetVersion(Version)
			server := &http.Server{
				Addr:              host,
				Handler:           routes.NewRouter(a.container),
				ReadHeaderTimeout: 10 * time.Second,
			}

			stopped := make(chan struct{})
			go func() {
				defer close(stopped)
				<-cmd.Context().Done()
				middleware.UpdateHealthStatus("shutting_down")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(ctx); err != nil {
					log.Warn("Server shutdown failed", zap.Error(err))
				}
			}()

			log.Info("Console API listening", zap.String("host", host), zap.Strings("resources", a.container.Resources.Names()))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			<-stopped

			return nil
		},
	}
	serveCmd.Flags().String("host", "", "Address to listen on (defaults to APP_HOST)")

	return serveCmd
}

package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"armario-outfits/app"
	"armario-outfits/config"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the outfit canvas HTTP server",
		Long: `Starts the HTTP API for canvas sessions, the item picker and outfits.

Canvas drafts are stored in PostgreSQL when DATABASE_URL or DB_* variables are set.`,
		Example: `  # Start server on PORT or 8080
  armario-outfits serve

  # Start server on custom port
  armario-outfits serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			handler, cleanup, err := app.Initialize(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker)
			addr := "0.0.0.0:" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: handler,
			}

			serverErr := make(chan error, 1)
			go func() {
				log.Printf("Server starting on %s (store=%s)", addr, cfg.StoreBaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				log.Printf("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Printf("❌ Server shutdown failed: %v", err)
					return err
				}
				log.Printf("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

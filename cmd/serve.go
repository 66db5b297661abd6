package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/handlers"
	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string
	var historyPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the drawing interface",
		Long: `Starts the Sketchbook web interface on the specified port.

Students enter their class number and name, describe a picture, optionally
upload a reference image, and keep drawing until they pick one to save.`,
		Example: `  # Start server on default port 8888
  sketchbook serve

  # Start server on custom port and keep a history of every drawing
  sketchbook serve --port 3000 --history drawings.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			comp, err := drawing.NewComposer(cfg)
			if err != nil {
				return err
			}
			gen, err := drawing.NewGenerator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fetcher := images.NewFetcher()
			fetcher.HTTPClient.Timeout = cfg.HTTPTimeout
			log := history.NewLog()

			handler := handlers.New(handlers.Options{
				Drawer:  drawing.NewService(comp, gen, log),
				Fetcher: fetcher,
				History: log,
				SaveDir: cfg.SaveDir,
			})
			if err := handler.EnsureSaveDir(); err != nil {
				return err
			}

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Sketchbook interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				if historyPath != "" {
					if err := history.WriteFile(historyPath, log.Records("")); err != nil {
						slog.Error("Unable to write drawing history", "err", err)
					}
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&historyPath, "history", "", "Write every drawing to this parquet file on shutdown")

	return cmd
}

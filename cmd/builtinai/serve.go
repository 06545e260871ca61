package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"builtinai/internal/httpapi"
)

func (a *app) serveCmd() *cobra.Command {
	var addr, corsOrigins string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, templates and planner over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			origins := a.cfg.CORSOrigins
			if corsOrigins != "" {
				origins = splitCSV(corsOrigins)
			}
			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			httpapi.SetLogger(a.log)
			httpapi.SetDefaultLogLevel(a.cfg.LogLevel)
			httpapi.SetCORSOptions(len(origins) > 0, origins, nil, nil)
			httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)

			// Canceled on SIGINT/SIGTERM so in-flight store queries stop.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(ctx)
			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           httpapi.NewMux(svc),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       httpapi.BaseContext,
			}
			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", a.cfg.Addr).Str("models_dir", a.cfg.ModelsDir()).Msg("builtinai listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			// Graceful shutdown (Ctrl+C / SIGTERM)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8089 (defaults BUILTINAI_ADDR or config)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins")
	return cmd
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smp/internal/platform/config"
	"smp/internal/platform/httpserver"
	"smp/internal/platform/logger"
)

func newServeCmd(v *viper.Viper, loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the registry HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
	cmd.Flags().String("backend", "", "storage backend id (overrides backend.id)")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("backend.id", cmd.Flags().Lookup("backend"))
	return cmd
}

// serve runs the server until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log)

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.Server, app.router)
	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting smp-server",
			"addr", cfg.Server.Addr,
			"backend_id", cfg.Backend.ID,
			"locator_enabled", cfg.Locator.Enabled,
			"audit_sink", cfg.Audit.Sink,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "graceful shutdown failed", "error", err)
	}
	if err := app.Close(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "failed to release resources", "error", err)
		serveErr = errors.Join(serveErr, err)
	}
	log.InfoContext(shutdownCtx, "smp-server stopped")
	return serveErr
}

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/api"
	"github.com/abhisek/quizzy/internal/practice"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer e.Close()

		if cmd.Flags().Changed("host") {
			e.cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			e.cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		svc, err := e.service()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		explainer, err := e.explainer(ctx, false)
		if err != nil {
			e.logger.Warn("explanations unavailable", "error", err)
		}

		go pruneSessions(ctx, svc, e.cfg.Session.Retention, e.logger)

		srv := api.New(api.Options{
			Service:        svc,
			Explainer:      explainer,
			AllowedOrigins: e.cfg.Server.AllowedOrigins,
			Logger:         e.logger,
		})
		err = srv.ListenAndServe(ctx, e.cfg.Server.Addr())
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

// pruneSessions drops finished sessions older than retention until ctx is
// done.
func pruneSessions(ctx context.Context, svc *practice.Service, retention time.Duration, logger *slog.Logger) {
	if retention <= 0 {
		return
	}
	ticker := time.NewTicker(min(retention, 10*time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := svc.Prune(now.Add(-retention)); n > 0 {
				logger.Info("pruned sessions", "count", n, "remaining", svc.Len())
			}
		}
	}
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides server.port)")
}

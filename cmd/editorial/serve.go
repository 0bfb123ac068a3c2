package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/lbt00001-beep/mbainative-website-sub000/internal/api/http"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/audit"
	authmw "github.com/lbt00001-beep/mbainative-website-sub000/internal/auth/middleware"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/config"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		log := newLogger(cfg)
		defer log.Sync()

		ev, ex := newPipeline(cfg, log)
		deps := api.Deps{
			Evaluator:    ev,
			Extractor:    ex,
			Log:          log,
			ServerAPIKey: cfg.OpenRouterAPIKey,
			MaxBodyBytes: cfg.MaxBodyBytes,
			CORSOrigins:  cfg.CORSOrigins,
		}

		// --- DB (audit log) ---
		if cfg.AuditEnabled {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
			cancel()
			if err != nil {
				log.Error("db open failed", "driver", cfg.DBDriver, "error", err)
				return err
			}
			defer dbh.Close()
			deps.Audit = audit.NewStore(dbh, db.Driver(cfg.DBDriver))
		}

		// --- Auth ---
		if cfg.AuthEnabled() {
			deps.Auth = authmw.NewAuthService(cfg.AuthHMACSecret, cfg.AdminUser, cfg.AdminPassHash)
		}

		if cfg.OpenRouterAPIKey == "" {
			log.Warn("OPENROUTER_API_KEY not set; requests must carry apiKey")
		}

		s := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewRouter(deps),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "audit", deps.Audit != nil, "auth", deps.Auth != nil)
			errCh <- s.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	},
}

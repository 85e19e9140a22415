package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"librarysite/internal/admintoken"
	"librarysite/internal/ratelimit"
	"librarysite/internal/util"
	"librarysite/services/blog/internal/server"
)

func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, core, err := bootstrap(cmd, *configFile)
			if err != nil {
				return err
			}
			defer st.Close()

			trusted, err := util.ParseTrustedProxies(cfg.TrustedProxies)
			if err != nil {
				return fmt.Errorf("parse trusted proxies: %w", err)
			}
			var limiter *ratelimit.FixedWindowLimiter
			if cfg.RateLimitPerMinute > 0 {
				limiter, err = ratelimit.NewRedisFixedWindowLimiter(ratelimit.Config{
					Addr:     cfg.RedisAddr,
					Password: cfg.RedisPassword,
					Prefix:   "librarysite:blog:ratelimit",
					Limit:    cfg.RateLimitPerMinute,
					Window:   time.Minute,
					FailOpen: cfg.RateLimitFailOpen,
				})
				if err != nil {
					return fmt.Errorf("init rate limiter: %w", err)
				}
				defer limiter.Close()
			}

			var verifier *admintoken.Verifier
			if cfg.AdminJWTSecret != "" {
				verifier, err = admintoken.NewVerifier(cfg.AdminJWTSecret, 0)
				if err != nil {
					return fmt.Errorf("init admin verifier: %w", err)
				}
			}

			httpServer, err := server.New(server.Config{
				App:            core,
				Limiter:        limiter,
				TrustedProxies: trusted,
				AdminVerifier:  verifier,
			})
			if err != nil {
				return fmt.Errorf("init server: %w", err)
			}

			addr := ":" + cfg.Port
			srv := &http.Server{
				Addr:         addr,
				Handler:      httpServer.Router(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() {
				slog.Info("blog server listening", "addr", addr, "rate_limit", cfg.RateLimitPerMinute, "admin", verifier != nil)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			slog.Info("blog server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

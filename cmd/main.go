package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/backend"
	"github.com/ukydev/fleet-manager/internal/config"
	"github.com/ukydev/fleet-manager/internal/dashboard"
	"github.com/ukydev/fleet-manager/internal/handlers"
	"github.com/ukydev/fleet-manager/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := be.Close(closeCtx); err != nil {
			log.WithError(err).Warn("Failed to close backend")
		}
	}()

	authService, err := auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return err
	}

	dash := dashboard.NewService(be.Records, dashboard.Options{
		IncludeFuelInTotal: cfg.Dashboard.IncludeFuelInTotal,
		Location:           loc,
		Now:                time.Now,
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:            authService,
		Users:           be.Users,
		Dashboard:       dash,
		Records:         be.Records,
		RequestTimeout:  cfg.Server.RequestTimeout,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		TrustedProxies:  proxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":     cfg.Server.Port,
			"backend":  cfg.Backend,
			"timezone": loc.String(),
		}).Info("HTTP server listening")
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

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/solarsmart/account-service/internal/bootstrap"
	"github.com/solarsmart/account-service/internal/logger"
)

const shutdownTimeout = 15 * time.Second

// httpServer is the slice of *http.Server that Run needs. Tests substitute a
// fake to exercise the exit paths without binding a port.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
}

// realServer ties server lifecycle to the app's resource teardown.
type realServer struct {
	app *bootstrap.App
}

func (s *realServer) ListenAndServe() error { return s.app.Server.ListenAndServe() }

func (s *realServer) Shutdown(ctx context.Context) error {
	err := s.app.Server.Shutdown(ctx)
	s.app.Close()
	return err
}

func (s *realServer) Close() error {
	err := s.app.Server.Close()
	s.app.Close()
	return err
}

type serverBuilder func() (httpServer, string, error)

func buildFromBootstrap() (httpServer, string, error) {
	app, err := bootstrap.Build(bootstrap.Default())
	if err != nil {
		return nil, "", err
	}
	return &realServer{app: app}, app.Config.HTTPAddr, nil
}

// Run serves until the listener fails or a signal arrives, then drains
// in-flight requests. Returns the process exit code.
func Run(build serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, addr, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	lg.Info().Str("addr", addr).Msg("account service listening")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error().Err(err).Msg("server crashed")
			return 1
		}
		return 0

	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			lg.Error().Err(err).Msg("graceful shutdown failed, forcing close")
			_ = srv.Close()
			return 1
		}
		<-errCh // listener has returned ErrServerClosed
		lg.Info().Msg("shutdown complete")
		return 0
	}
}

func main() {
	_ = godotenv.Load() // optional .env for local runs
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(Run(buildFromBootstrap, sigCh, logger.Logger))
}

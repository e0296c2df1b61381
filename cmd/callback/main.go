package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"consentflow/internal/callback"
	"consentflow/internal/platform/config"
	"consentflow/internal/platform/httpserver"
	"consentflow/internal/platform/logger"
	"consentflow/internal/platform/middleware"
)

// main serves the development redirect target that prints the issued code.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	callback.New(log).Register(r)

	srv := httpserver.New(cfg.CallbackAddr, r)
	errCh := make(chan error, 1)
	go func() {
		log.Info("callback server listening", "addr", cfg.CallbackAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "callback: %v\n", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

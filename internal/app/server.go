package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background. The returned channel closes once the
// process receives a termination signal.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})

	go a.listen()
	go func() {
		defer close(done)
		waitForSignal()

		if a.cancel != nil {
			a.cancel()
		}
		slog.Info("termination signal received")
	}()

	return done
}

func (a *App) listen() {
	slog.Info("http server listening", "address", a.httpServer.Addr)

	err := a.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)

	<-sig
}

// Serve runs the HTTP server on l until it is shut down.
func (a *App) Serve(l net.Listener) <-chan error {
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		errs <- a.httpServer.Serve(l)
	}()
	return errs
}

// Stop drains in-flight requests, waits for background consumers and then
// releases every resource in registration order.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background routine failed", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}

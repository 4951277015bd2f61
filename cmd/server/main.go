package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/wave-console/internal/app"
	"github.com/jrsteele09/wave-console/internal/config"
	"github.com/jrsteele09/wave-console/internal/logging"
	"github.com/jrsteele09/wave-console/server"
	"github.com/jrsteele09/wave-console/session"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, c)
	if err != nil {
		return fmt.Errorf("app.New: %w", err)
	}

	handler, err := server.New(c, a.Session, a.Client, a.Store)
	if err != nil {
		closeApp(a)
		return fmt.Errorf("server.New: %w", err)
	}

	stop := a.StartResolve(ctx, logResolved)
	defer func() {
		if err := stop(); err != nil {
			log.Warn().Err(err).Msg("Closing session failed")
		}
	}()

	srv := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(srv)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	cancel()
	return shutdown(srv)
}

// logResolved reports the outcome of the startup check that ran while pages
// showed the loading placeholder.
func logResolved(state session.State) {
	event := log.Info().Str("phase", state.Phase.String())
	if state.User != nil {
		event = event.Int64("user_id", state.User.ID)
	}
	event.Msg("Session resolved")
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing session failed")
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

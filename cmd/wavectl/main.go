package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/app"
	"github.com/jrsteele09/wave-console/internal/cli"
	"github.com/jrsteele09/wave-console/internal/config"
	"github.com/jrsteele09/wave-console/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	c := config.New()
	// Keep the terminal quiet unless asked otherwise.
	level := c.GetLogLevel()
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logging.Setup(c.GetEnv(), level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wavectl:", err)
		return 1
	}
	defer a.Close()

	cmd := cli.New(a.Session, a.Client, os.Stdin, os.Stdout, cli.WithPageSize(c.GetDefaultPageSize()))
	if err := cmd.Run(ctx, os.Args[1:]); err != nil {
		if apiErr, ok := apiclient.AsAPIError(err); ok {
			fmt.Fprintln(os.Stderr, "wavectl:", apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "wavectl:", err)
		}
		return 1
	}
	return 0
}

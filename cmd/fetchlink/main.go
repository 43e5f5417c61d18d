package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"fetchlink/config"
	"fetchlink/internal/cli"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes one invocation. A configuration error does not stop here:
// cli.Run reports it only when a transfer is requested.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfiguration()

	ctx, stop := signalContext()
	defer stop()

	program := ""
	if len(args) > 0 {
		program = filepath.Base(args[0])
		args = args[1:]
	}

	return cli.Run(ctx, args, cli.Env{
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    cfg,
		ConfigErr: err,
		Usage:     cli.DefaultUsage(program),
	})
}

// loadConfiguration loads and validates the configuration from the
// environment and .env files
func loadConfiguration() (*config.Config, error) {
	cfgProvider := config.GetProvider()
	if err := cfgProvider.Load(); err != nil {
		return nil, err
	}
	return cfgProvider.Get()
}

// signalContext returns a context cancelled on the first interrupt.
func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	breakChannel := make(chan os.Signal, 1)
	signal.Notify(breakChannel, os.Interrupt)

	go func() {
		select {
		case <-breakChannel:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(breakChannel)
		cancel()
	}
}

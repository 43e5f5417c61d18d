// Package cli implements the fetchlink command line: argument parsing,
// usage output, dependency wiring and exit codes.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"fetchlink/config"
	"fetchlink/internal/domain"
	"fetchlink/internal/progress"
	"fetchlink/internal/store"
	"fetchlink/internal/transfer"
	"fetchlink/internal/usecase"
	"fetchlink/observability"
)

// Env is everything Run needs from the process.
//
// ConfigErr carries a failure from loading Config. It is only reported once
// a transfer is about to start, so help, version and argument errors still
// work with a broken environment.
type Env struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config
	ConfigErr error
	Usage     Usage
}

func (e *Env) defaults() {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Config == nil {
		e.Config = config.DefaultConfig()
	}
	if e.Usage.Program == "" {
		e.Usage = DefaultUsage(e.Config.ServiceName)
	}
}

// Run executes one invocation with args (program name excluded) and returns
// the process exit status.
func Run(ctx context.Context, args []string, env Env) int {
	env.defaults()

	opts, err := parseArgs(env.Usage.Program, args)
	if err != nil {
		return usageFailure(env, err.Error())
	}

	if opts.help {
		env.Usage.PrintHelp(env.Stdout)
		return domain.ExitOK
	}
	if opts.version {
		fmt.Fprintf(env.Stdout, "%s %s\n", env.Usage.Program, env.Config.Version)
		return domain.ExitOK
	}

	switch len(opts.args) {
	case 0:
		return usageFailure(env, "missing URL")
	case 1:
		return usageFailure(env, "missing destination")
	case 2:
	default:
		return usageFailure(env, fmt.Sprintf("unexpected argument %q", opts.args[2]))
	}

	if env.ConfigErr != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", env.ConfigErr)
		return domain.ExitFailure
	}

	cfg, err := applyOptions(*env.Config, opts)
	if err != nil {
		return usageFailure(env, err.Error())
	}

	app, err := buildApplication(cfg, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return domain.ExitFailure
	}
	defer app.obs.Close()

	req := domain.NewTransferRequest(opts.args[0], opts.args[1])
	result, err := app.fetcher.Execute(ctx, req)

	if cfg.Metrics.File != "" {
		if werr := app.obs.WriteMetrics(cfg.Metrics.File); werr != nil {
			fmt.Fprintf(env.Stderr, "warning: %v\n", werr)
		}
	}

	if err != nil {
		if domain.IsKind(err, domain.KindUsage) {
			return usageFailure(env, err.Error())
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return domain.ExitCode(err)
	}

	if !opts.quiet {
		fmt.Fprintf(env.Stdout, "saved %s to %s (%s, sha256:%s)\n",
			result.URL, result.Destination, progress.FormatBytes(result.Size), result.Checksum)
	}
	return domain.ExitOK
}

func usageFailure(env Env, msg string) int {
	fmt.Fprintf(env.Stderr, "error: %s\n", msg)
	env.Usage.PrintUsage(env.Stderr)
	return domain.ExitUsage
}

// applyOptions returns a copy of cfg with command line overrides applied.
func applyOptions(cfg config.Config, opts *options) (*config.Config, error) {
	if opts.timeout < 0 {
		return nil, fmt.Errorf("--timeout must be positive")
	}
	if opts.timeout > 0 {
		cfg.HTTP.Timeout = opts.timeout
	}
	if opts.progress != "" {
		cfg.Progress.Mode = opts.progress
	}
	if opts.quiet {
		cfg.Progress.Mode = config.ProgressNone
	}
	if opts.metricsFile != "" {
		cfg.Metrics.File = opts.metricsFile
	}

	if err := cfg.Progress.Validate(); err != nil {
		return nil, fmt.Errorf("invalid --progress: %w", err)
	}
	return &cfg, nil
}

type application struct {
	obs     *observability.DefaultProvider
	fetcher *usecase.Fetcher
}

func buildApplication(cfg *config.Config, env Env) (*application, error) {
	obs := observability.NewProvider(&observability.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		LogOutput:   env.Stderr,
		AdditionalFields: observability.Fields{
			"version": cfg.Version,
		},
	})

	linkStore, err := createLinkStore(cfg, obs)
	if err != nil {
		obs.Close()
		return nil, err
	}

	reporter, err := progress.New(cfg.Progress.Mode, env.Stderr, cfg.Progress.Interval)
	if err != nil {
		obs.Close()
		return nil, err
	}

	client := transfer.NewClientFromConfig(cfg.HTTP).
		WithLogger(obs.Logger("transfer")).
		WithMetrics(obs.Metrics("transfer"))

	fetcher := usecase.NewFetcher(
		client,
		linkStore,
		reporter,
		obs,
	)

	return &application{obs: obs, fetcher: fetcher}, nil
}

func createLinkStore(cfg *config.Config, obs *observability.DefaultProvider) (store.LinkStore, error) {
	fileStore := store.NewFileStore(obs.Logger("store.file"), obs.Metrics("store.file"))

	if !cfg.S3Enabled() {
		return store.NewRouter(fileStore, nil), nil
	}

	s3Store, err := store.NewS3Store(&cfg.Storage, obs.Logger("store.s3"), obs.Metrics("store.s3"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 store: %w", err)
	}
	return store.NewRouter(fileStore, s3Store), nil
}

/*
Package observability provides structured logging and metrics collection
for fetchlink.

# Architecture

	Provider (manages instances per component)
	    ├── Logger (JSON lines, stderr by default)
	    └── Metrics (Prometheus, provider-owned registry)

Each component (transfer, store, usecase.fetch, cli) asks the provider for its
own Logger and Metrics. Instances are cached, so repeated lookups never
register duplicate collectors.

# Usage

	provider := observability.NewProvider(&observability.Config{
	    ServiceName: "fetchlink",
	    Environment: "local",
	    LogLevel:    "warn",
	})
	defer provider.Close()

	log := provider.Logger("transfer")
	metrics := provider.Metrics("transfer")

	ctx = types.WithRequestID(ctx, id)
	log.Info(ctx, "Fetching", observability.Fields{"url": url})

	metrics.StartOperation("fetch")
	defer metrics.EndOperation("fetch")

# Metrics export

A CLI process is too short-lived to be scraped, so metrics are written once
at exit with WriteMetrics in the text exposition format, which the
node_exporter textfile collector picks up.

# Testing

The mocks package provides testify based MockLogger, MockMetrics and
MockProvider, plus permissive constructors for tests that do not assert on
observability calls.
*/
package observability

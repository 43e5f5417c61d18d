package cli

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

type options struct {
	help        bool
	quiet       bool
	version     bool
	progress    string
	timeout     time.Duration
	metricsFile string
	args        []string
}

func newFlagSet(program string, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(true)

	fs.BoolVarP(&o.help, "help", "h", false, "show this help and exit")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "print nothing but errors")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.StringVar(&o.progress, "progress", "", "progress display: auto, bar, line or none")
	fs.DurationVar(&o.timeout, "timeout", 0, "abort the transfer after this duration")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this path")
	return fs
}

// parseArgs accepts flags before, between and after the positional
// arguments. Everything after "--" is positional.
func parseArgs(program string, args []string) (*options, error) {
	o := &options{}
	fs := newFlagSet(program, o)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.args = fs.Args()
	return o, nil
}

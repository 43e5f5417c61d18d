package cli

import (
	"fmt"
	"io"
	"strings"
)

// Flag documents one command line flag.
type Flag struct {
	Names       string
	Description string
}

// Usage holds the strings printed by PrintUsage and PrintHelp.
type Usage struct {
	Program     string
	Synopsis    string
	Description string
	Flags       []Flag
	Examples    []string
}

// DefaultUsage returns the usage text of the fetchlink command.
func DefaultUsage(program string) Usage {
	if program == "" {
		program = "fetchlink"
	}
	return Usage{
		Program:     program,
		Synopsis:    "[flags] <url> <destination>",
		Description: "Download <url> and store the received bytes at <destination>.\n" +
			"<destination> is a file path, an existing directory, or s3://bucket/key.",
		Flags: []Flag{
			{"-h, --help", "show this help and exit"},
			{"-q, --quiet", "print nothing but errors"},
			{"--progress MODE", "progress display: auto, bar, line or none (default auto)"},
			{"--timeout DURATION", "abort the transfer after DURATION, e.g. 30s or 2m"},
			{"--metrics-file PATH", "write Prometheus metrics to PATH after the run"},
			{"--version", "print the version and exit"},
		},
		Examples: []string{
			program + " https://example.com/report.pdf report.pdf",
			program + " --progress=line https://example.com/data.json /tmp/",
			program + " -q https://example.com/a.zip s3://my-bucket/archives/a.zip",
		},
	}
}

// PrintUsage writes the one-line invocation summary.
func (u Usage) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s %s\n", u.Program, u.Synopsis)
}

// PrintHelp writes the extended usage with flag descriptions.
func (u Usage) PrintHelp(w io.Writer) {
	u.PrintUsage(w)
	if u.Description != "" {
		fmt.Fprintf(w, "\n%s\n", u.Description)
	}

	if len(u.Flags) > 0 {
		width := 0
		for _, f := range u.Flags {
			if len(f.Names) > width {
				width = len(f.Names)
			}
		}
		fmt.Fprintln(w, "\nflags:")
		for _, f := range u.Flags {
			fmt.Fprintf(w, "  %-*s  %s\n", width, f.Names, f.Description)
		}
	}

	if len(u.Examples) > 0 {
		fmt.Fprintln(w, "\nexamples:")
		fmt.Fprintf(w, "  %s\n", strings.Join(u.Examples, "\n  "))
	}

	fmt.Fprintln(w, "\nexit status: 0 on success, 1 on network, HTTP or write failure, 2 on usage error")
}

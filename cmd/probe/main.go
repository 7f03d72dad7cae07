package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/melodig/trackmix/internal/probe"
)

// Default configuration constants.
const (
	defaultCount         = 50
	defaultKnownUserID   = 31
	defaultUnknownUserID = 999999999
	defaultTimeout       = 30 * time.Second
	defaultProbeTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8000", "Base URL of the service")
		count       = flag.Int("n", defaultCount, "Number of recommendations to request")
		knownUser   = flag.Int64("user", defaultKnownUserID, "User id expected to have an offline ranking")
		unknownUser = flag.Int64("unknown-user", defaultUnknownUserID, "User id expected to be absent from the rankings")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile     = flag.String("log", "", "Log file for probe output (default: probe_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	// Setup logging
	if err := probe.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	// Create probe configuration
	config := &probe.Config{
		BaseURL:       *baseURL,
		Count:         *count,
		KnownUserID:   *knownUser,
		UnknownUserID: *unknownUser,
		Timeout:       *timeout,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the probe
	if err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandshell/sandshell/internal/config"
	"github.com/sandshell/sandshell/internal/sandbox"
)

// newLogger logs to stderr; stdout belongs to the MCP channel and the
// one-shot command output.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandshell",
	})
}

// loadOptions resolves the sandbox options from config, then applies flag
// overrides.
func loadOptions() (sandbox.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return sandbox.Options{}, err
	}

	opts := cfg.Options()
	if timeoutFlag > 0 {
		opts.Timeout = time.Duration(timeoutFlag) * time.Second
	}
	if keepCapsFlag {
		opts.DropCapabilities = false
	}
	if bwrapFlag != "" {
		opts.BwrapPath = bwrapFlag
	}
	return opts, nil
}

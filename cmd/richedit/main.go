// Package main is the entry point for the richedit command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/richedit/internal/cli"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cli.Execute(ctx, version, os.Args[1:], os.Stdout, os.Stderr)
}

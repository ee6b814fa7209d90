// Package main provides the fetch-releases command, which refreshes the release
// document consumed by the documentation site.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/newstack-cloud/bluelink-docs/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()

	if err := app.RunContext(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}

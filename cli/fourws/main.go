// Package main is the fourws command itself.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/steerlab/fourws/cli"
	"github.com/steerlab/fourws/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		logging.Global().Fatal(err)
	}
}

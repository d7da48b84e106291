// Command urictl parses, checks and renders RFC 3986 URI references.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ghettovoice/gouri/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.New(cli.Config{}).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/picatz/dnslists/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.CommandRoot.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

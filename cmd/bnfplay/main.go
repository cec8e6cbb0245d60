package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"bnfplay/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewCLI().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrNoMatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
)

func main() {
	// Initialize styled help after all commands are registered
	initHelp(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Failures already reported by the command only set the exit status.
		if !errors.Is(err, errReported) {
			outputError(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

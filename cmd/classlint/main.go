// Package main provides the classlint CLI: it checks class names in JSX
// markup and class-name builder calls against a compiled stylesheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// exitError ends the process with code after the command printed its output.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

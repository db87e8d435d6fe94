package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/temirov/cleanmybranch/cmd/cli"
	"github.com/temirov/cleanmybranch/internal/ui"
)

// main executes the clean-my-branch command-line application.
func main() {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	executionError := cli.Execute(executionContext)
	stop()

	if executionError != nil {
		ui.NewPrinter(os.Stderr, !color.NoColor).Failure(executionError)
		os.Exit(1)
	}
}

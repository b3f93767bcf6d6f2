package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"filesort/internal/services"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidArgs = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode reports err on stderr and maps it to the process status. An
// interrupt is not reported.
func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}
	fmt.Fprintf(stderr, "filesort: %v\n", err)
	if errors.Is(err, services.ErrValidation) {
		return exitInvalidArgs
	}
	return exitFailure
}

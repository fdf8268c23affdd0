// Command catalog is a terminal client for the library catalog API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"library-catalog/internal/shared/apperror"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, render(err))
		os.Exit(exitCode(err))
	}
}

// exitCode: 2 for input problems, 3 for access denials, 1 otherwise.
func exitCode(err error) int {
	switch {
	case apperror.IsValidation(err):
		return 2
	case apperror.IsPolicyDenied(err):
		return 3
	default:
		return 1
	}
}

func render(err error) string {
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		out := "invalid input:"
		for _, line := range sortedFields(ve.Fields) {
			out += "\n  " + line
		}
		return out
	}
	return "error: " + err.Error()
}

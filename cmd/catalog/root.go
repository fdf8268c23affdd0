package main

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"library-catalog/internal/config"
	"library-catalog/pkg/container"
	"library-catalog/pkg/logger"
)

// app is shared by every subcommand; the container is built once per run.
type app struct {
	verbose bool
	c       *container.Container
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse and manage the library catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), cmd.OutOrStdout())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.c != nil {
				a.c.Cleanup()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests and session changes")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRegisterCmd(a),
		newBooksCmd(a),
		newAuthorsCmd(a),
		newGenresCmd(a),
		newUsersCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, out io.Writer) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.verbose {
		logger.Init("development")
	} else {
		logger.Silence()
	}

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("start client: %w", err)
	}
	a.c = c
	a.out = out
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/benaskins/rememberme/internal/logbuf"
	"github.com/benaskins/rememberme/internal/tui"
)

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive login and home screens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	// The UI owns the terminal; logs go to the in-app pane instead of stderr.
	ring := logbuf.New(64)
	a, err := openApp(flags, "tui", func(level slog.Leveler) slog.Handler {
		return ring.Handler(level)
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.Deps{
		Store:        a.store,
		Logger:       a.logger,
		Logs:         ring,
		MetadataPath: a.cfg.Metadata,
	})
}

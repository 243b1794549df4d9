// Command includes evaluates membership query documents.
//
// Usage:
//
//	includes eval queries.json
//	includes eval --workers 4 --digest sha256:... https://example.com/queries.yaml.zst
//	includes eval --watch queries.yaml
//	includes digest queries.json
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "includes",
		Short:        "Answer same-value-zero membership queries",
		SilenceUsage: true,
	}
	root.AddCommand(newEvalCmd(), newDigestCmd())
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

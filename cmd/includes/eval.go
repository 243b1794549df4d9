package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"

	"github.com/meigma/includes"
)

var errQueriesFailed = errors.New("one or more queries failed")

type evalConfig struct {
	workers  int
	strict   bool
	failFast bool
	digest   string
	format   string
	maxBytes int64
	watch    bool
	interval time.Duration
	verbose  bool
}

func newEvalCmd() *cobra.Command {
	var cfg evalConfig
	cmd := &cobra.Command{
		Use:   "eval [file|url|-]",
		Short: "Evaluate a query document",
		Long: `Evaluate every query in a JSON or YAML query document and print one
JSON result per line. The document may be zstd-compressed. With no argument,
or with "-", the document is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.workers, "workers", 0, "concurrent workers: <0 serial, 0 auto, >0 fixed")
	flags.BoolVar(&cfg.strict, "strict", false, "reject non-integral lengths and start indexes instead of coercing them")
	flags.BoolVar(&cfg.failFast, "fail-fast", false, "stop at the first failing query")
	flags.StringVar(&cfg.digest, "digest", "", "expected digest of the raw document (e.g. sha256:...)")
	flags.StringVar(&cfg.format, "format", "auto", "document format: auto, json, yaml")
	flags.Int64Var(&cfg.maxBytes, "max-bytes", includes.DefaultMaxDocumentBytes, "maximum document size in bytes (0 for no limit)")
	flags.BoolVar(&cfg.watch, "watch", false, "re-evaluate when the document changes")
	flags.DurationVar(&cfg.interval, "interval", 5*time.Second, "poll interval for watched URLs")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output")
	return cmd
}

//nolint:gocritic // hugeParam acceptable for config struct in CLI tool
func runEval(cmd *cobra.Command, args []string, cfg evalConfig) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg.verbose)

	finder, err := includes.NewFinder(
		includes.WithStrict(cfg.strict),
		includes.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	format, err := includes.ParseFormat(cfg.format)
	if err != nil {
		return err
	}
	loadOpts := []includes.LoadOption{
		includes.LoadWithFormat(format),
		includes.LoadWithMaxBytes(cfg.maxBytes),
	}
	if cfg.digest != "" {
		d, err := digest.Parse(cfg.digest)
		if err != nil {
			return fmt.Errorf("digest: %w", err)
		}
		loadOpts = append(loadOpts, includes.LoadWithDigest(d))
	}

	ev := &evaluator{
		in:       newInput(inputArg(args), cmd.InOrStdin(), cfg.maxBytes),
		out:      cmd.OutOrStdout(),
		logger:   logger,
		finder:   finder,
		loadOpts: loadOpts,
		evalOpts: []includes.EvaluateOption{
			includes.EvaluateWithWorkers(cfg.workers),
			includes.EvaluateWithFailFast(cfg.failFast),
		},
	}

	if cfg.watch {
		return ev.watch(cmd.Context(), cfg.interval)
	}
	return ev.run(cmd.Context())
}

// evaluator loads a document from one input and prints its results.
type evaluator struct {
	in       input
	out      io.Writer
	logger   *slog.Logger
	finder   *includes.Finder
	loadOpts []includes.LoadOption
	evalOpts []includes.EvaluateOption
}

func (e *evaluator) run(ctx context.Context) error {
	rc, err := e.in.open(ctx)
	if err != nil {
		return err
	}
	doc, err := includes.Load(rc, e.loadOpts...)
	_ = rc.Close()
	if err != nil {
		return err
	}

	e.logger.Debug("loaded query document",
		slog.String("source", e.in.name),
		slog.String("digest", doc.Digest.String()),
		slog.String("format", doc.Format.String()),
		slog.Bool("compressed", doc.Compressed),
		slog.Int("queries", len(doc.Queries)))

	results, err := includes.Evaluate(ctx, e.finder, doc.Queries, e.evalOpts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(e.out)
	failed := 0
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		e.logger.Warn("queries failed",
			slog.String("source", e.in.name),
			slog.Int("failed", failed),
			slog.Int("total", len(results)))
		return errQueriesFailed
	}
	return nil
}

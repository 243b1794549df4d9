package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	includeshttp "github.com/meigma/includes/http"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 200 * time.Millisecond

// watch evaluates the input once and again whenever it changes, until ctx
// is done. Evaluation errors are logged and do not stop the watch.
func (e *evaluator) watch(ctx context.Context, interval time.Duration) error {
	switch {
	case e.in.isStdin():
		return errors.New("cannot watch standard input")
	case e.in.remote != nil:
		return e.poll(ctx, interval)
	default:
		return e.watchFile(ctx)
	}
}

// runLogged evaluates the input and logs failures. Failed queries are
// already reported in the results, and errors caused by ctx ending are
// not failures.
func (e *evaluator) runLogged(ctx context.Context) {
	err := e.run(ctx)
	switch {
	case err == nil, ctx.Err() != nil, errors.Is(err, errQueriesFailed):
	case errors.Is(err, includeshttp.ErrNotModified):
		e.logger.Debug("query document not modified", slog.String("source", e.in.name))
	default:
		e.logger.Error("evaluation failed",
			slog.String("source", e.in.name),
			slog.Any("error", err))
	}
}

func (e *evaluator) watchFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than
	// write it in place, which drops a watch on the file itself.
	path, err := filepath.Abs(e.in.name)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	e.logger.Info("watching query document", slog.String("path", path))

	e.runLogged(ctx)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			e.logger.Debug("query document changed",
				slog.String("path", path),
				slog.String("op", event.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			e.runLogged(ctx)
		}
	}
}

func (e *evaluator) poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("interval must be positive")
	}
	e.logger.Info("polling query document",
		slog.String("url", e.in.remote.URL()),
		slog.Duration("interval", interval))

	e.runLogged(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.runLogged(ctx)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/editor"
	"github.com/goliatone/go-formstate/pkg/loader"
	"github.com/goliatone/go-formstate/pkg/report"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <data>",
		Short: "Re-validate a data file whenever it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.openEditor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			e.ForceValidate(true)

			w := &watcher{
				path:   args[0],
				editor: e,
				out:    cmd.OutOrStdout(),
				logger: a.logger,
			}
			if err := w.print(); err != nil {
				return err
			}
			return w.run(cmd.Context())
		},
	}
	a.addSourceFlags(cmd)
	return cmd
}

// watcher feeds file changes into an editor as upstream data.
type watcher struct {
	path     string
	editor   *editor.Editor
	out      io.Writer
	logger   *zap.Logger
	onReload func(error)
}

// run blocks until ctx is done. The parent directory is watched so editors
// that replace files on save are still seen.
func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("formstate: create watcher: %w", err)
	}
	defer fsw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("formstate: watch %s: %w", w.path, err)
	}
	w.logger.Info("watching", zap.String("path", target))

	// fire is nil while no change is pending.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fire = time.After(watchDebounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			err := w.reload()
			if err != nil {
				w.logger.Error("reload failed", zap.String("path", w.path), zap.Error(err))
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}

// reload reads the file again, hands it to the editor as the new upstream
// value and prints the report.
func (w *watcher) reload() error {
	data, err := loader.LoadData(w.path)
	if err != nil {
		return err
	}
	w.editor.SetData(data)
	w.logger.Debug("reloaded", zap.String("path", w.path))
	return w.print()
}

func (w *watcher) print() error {
	reporter, err := report.New()
	if err != nil {
		return err
	}
	_, err = reporter.Render(w.editor.Nodes(), w.editor.IsClean(), w.editor.IsValid(), w.out)
	return err
}

// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/H0llyW00dzZ/certview/src/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (a *app) newWatchCommand() *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "watch [FILE...]",
		Short: "Re-render tiers whenever an input file changes",
		Long:  "Renders the tiers once, then reloads every input and renders again after\neach change. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files := a.inputs(args)
			if err := a.renderTiers(ctx, vf, files); err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("cli: failed to start file watcher: %w", err)
			}
			defer watcher.Close()

			targets, err := watchTargets(watcher, files)
			if err != nil {
				return err
			}

			loop := &watchLoop{
				targets:  targets,
				debounce: time.Duration(a.cfg.Watch.DebounceMillis) * time.Millisecond,
				log:      a.log,
				reload: func() {
					fmt.Fprintf(a.out, "\n--- reloaded %s ---\n", a.now().Format(time.RFC3339))
					if err := a.renderTiers(ctx, vf, files); err != nil {
						a.log.Warnf("reload failed: %v", err)
					}
				},
			}
			a.log.Printf("watching %d files", len(targets))
			return loop.run(ctx, watcher.Events, watcher.Errors)
		},
	}
	vf.register(cmd, true)
	return cmd
}

// watchTargets registers the directory of every file with watcher and
// returns the cleaned absolute file paths. Directories are watched instead of
// files so that editors replacing a file by rename are still noticed.
func watchTargets(watcher *fsnotify.Watcher, files []string) (map[string]struct{}, error) {
	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("cli: %s: %w", f, err)
		}
		targets[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("cli: failed to watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	return targets, nil
}

// watchLoop turns file events into debounced reloads.
type watchLoop struct {
	targets  map[string]struct{}
	debounce time.Duration
	reload   func()
	log      logger.Logger
}

// relevant reports whether ev changes the content of a watched file.
func (w *watchLoop) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := w.targets[abs]
	return ok
}

// run consumes events until ctx is done or a channel closes. A burst of
// events closer together than the debounce interval causes one reload.
func (w *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)
			pending = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.log.Warnf("file watcher: %v", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

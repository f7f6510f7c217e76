package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lintgate/internal/engine"
)

// watchDebounce coalesces bursts of filesystem events into one re-run.
const watchDebounce = 250 * time.Millisecond

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Path     string // Optional path restricting each run
	Parallel bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the lint check whenever a watched file changes",
		Long: `Watch the project root and re-run the check on every change to a
file with a recognized extension. Each run uses the same candidate-set
rules as a plain check.`,
		Example: `  # Re-lint the change set on every edit
  lintgate watch

  # Re-lint one directory on every edit
  lintgate watch core/templates/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Lint language buckets concurrently")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	eng := cmdCtx.Engine
	r := cmdCtx.Renderer

	if opts.Path != "" && !filepath.IsAbs(opts.Path) {
		if abs, absErr := filepath.Abs(opts.Path); absErr == nil {
			opts.Path = abs
		}
	}

	runOnce := func(ctx context.Context) {
		report, runErr := eng.Run(ctx, engine.RunOptions{
			Path:     opts.Path,
			Parallel: opts.Parallel || cmdCtx.Cfg.Parallel,
		})
		if runErr != nil {
			r.Error(runErr.Error())
			return
		}
		_ = r.RenderReport(report)
	}

	ctx := cmd.Context()
	runOnce(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, eng.RootDir()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", eng.RootDir(), err)
	}

	r.Muted("Watching " + eng.RootDir() + " (Ctrl+C to stop)")

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Only re-run for files a linter would actually see
			if _, routed := eng.Registry().LanguageForPath(event.Name); !routed {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				r.Muted("Change detected: " + filepath.Base(event.Name))
				runOnce(ctx)
			})
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warning("watch error: " + watchErr.Error())
		}
	}
}

// watchDirRecursive adds dir and every subdirectory to the watcher,
// skipping hidden directories and node_modules.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != dir && (name == "node_modules" || (len(name) > 0 && name[0] == '.')) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

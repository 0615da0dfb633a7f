package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/jsparse/loader"
)

// debounceDelay collapses the several events editors emit for one save.
const debounceDelay = 100 * time.Millisecond

type WatchCmd struct {
	File   string `help:"JavaScript file to watch." arg:"" type:"existingfile"`
	Module bool   `help:"Parse the file as a module and watch everything it imports." short:"m"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := globals.Logger()
	defer func() { _ = logger.Sync() }()

	env, err := globals.Environment(logger)
	if err != nil {
		return err
	}

	opts := []loader.Option{loader.WithEnvironment(env), loader.WithLogger(logger)}
	if cmd.Module {
		opts = append(opts, loader.WithFollowImports())
	}

	path, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := newFileWatcher(loader.New(opts...), path, ctx.Stdout, ctx.Stderr, logger)
	printInfof(ctx.Stdout, "Watching %s (press ctrl+c to stop)", pathStyle.Render(path))
	return w.Run(runCtx)
}

// fileWatcher re-checks a file and its imports whenever one of them
// changes on disk.
type fileWatcher struct {
	loader *loader.Loader
	path   string
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger

	// onCheck is called after every check.
	onCheck func(*loader.Result)

	mu      sync.Mutex
	watched map[string]bool
}

func newFileWatcher(ldr *loader.Loader, path string, stdout, stderr io.Writer, log *zap.Logger) *fileWatcher {
	return &fileWatcher{
		loader:  ldr,
		path:    path,
		stdout:  stdout,
		stderr:  stderr,
		log:     log,
		watched: map[string]bool{},
	}
}

// Run checks the file once, then again after every change, until ctx is
// cancelled.
func (w *fileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	w.check(ctx, watcher)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Remove and Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("file changed", zap.String("source", event.Name), zap.String("op", event.Op.String()))

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				w.check(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printWarningf(w.stderr, "file watcher error: %v", err)
		}
	}
}

// check loads the file, reports its diagnostics and updates the watch list,
// since the set of imported files may have changed.
func (w *fileWatcher) check(ctx context.Context, watcher *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	result, err := w.loader.Load(ctx, w.path)
	if err != nil {
		printError(w.stderr, err.Error())
		w.watch(watcher, []string{w.path})
		return
	}

	writeCheckText(w.stdout, w.stderr, []*loader.Result{result})

	files := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, f.Path)
	}
	w.watch(watcher, files)

	if w.onCheck != nil {
		w.onCheck(result)
	}
}

func (w *fileWatcher) watch(watcher *fsnotify.Watcher, files []string) {
	current := make(map[string]bool, len(files))
	for _, f := range files {
		current[f] = true
	}

	for f := range w.watched {
		if !current[f] {
			_ = watcher.Remove(f)
		}
	}

	// Re-adding catches files that were replaced by an atomic save.
	for f := range current {
		if err := watcher.Add(f); err != nil {
			printWarningf(w.stderr, "failed to watch %s: %v", f, err)
		}
	}
	w.watched = current
}

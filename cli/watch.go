package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/kontomondo/fantomas"
)

// WatchCmd watches source files and reformats them in place on change.
type WatchCmd struct {
	Files []string `help:"Source files to watch." arg:"" type:"existingfile"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, file := range cmd.Files {
		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printInfof(ctx.Stdout, "watching %d file(s)", len(cmd.Files))

	// Debounce timer - editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves).
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			name := event.Name
			if timer, ok := pending[name]; ok {
				timer.Stop()
			}
			pending[name] = time.AfterFunc(debounceDelay, func() {
				cmd.reformat(ctx, runCtx, watcher, name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watcher error: %v", err))
		}
	}
}

// reformat formats one changed file in place, re-adding the watch in case
// the editor replaced the file atomically.
func (cmd *WatchCmd) reformat(ctx *kong.Context, runCtx context.Context, watcher *fsnotify.Watcher, path string) {
	_ = watcher.Add(path)

	content, err := os.ReadFile(path)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("failed to read %s: %v", path, err))
		return
	}

	result, err := fantomas.Format(runCtx, content, fantomas.WithFilename(path))
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("%s: %v", path, err))
		return
	}

	if bytes.Equal(content, result.Output) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("failed to stat %s: %v", path, err))
		return
	}
	if err := os.WriteFile(path, result.Output, info.Mode().Perm()); err != nil {
		printError(ctx.Stderr, fmt.Sprintf("failed to write %s: %v", path, err))
		return
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("formatted %s", pathStyle.Render(path)))
}

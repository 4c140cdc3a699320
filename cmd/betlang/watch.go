package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// watchAndRun runs run once immediately, then again every time path
// changes on disk, blocking until the watcher is closed (Ctrl-C).
// This is a supplemented feature (spec.md has no --watch flag); it
// reuses the same CheckVersionPragma/Parse/Elaborate/Evaluate pipeline
// as a plain "betlang run", just re-entered on each filesystem event.
func watchAndRun(path string, run func() int) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	code := run()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return code
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Fprintf(os.Stderr, "--- %s changed, re-running ---\n", path)
				code = run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return code
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

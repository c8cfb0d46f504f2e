// Package watcher re-runs an analysis whenever its source CSV changes.
//
// The watcher subscribes to the file's parent directory with fsnotify, so
// editors that save by writing a temp file and renaming it over the original
// are still seen. Bursts of events are debounced into one call to the
// handler, and the handler always runs on a single goroutine.
//
// Example usage:
//
//	w, err := watcher.New("groceries.csv", func() {
//		rerun()
//	}, watcher.Options{Debounce: 500 * time.Millisecond}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher

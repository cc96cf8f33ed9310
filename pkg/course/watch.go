package course

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/handicap-calculator-go/log"
)

// Watch calls onChange whenever the file at path is written, created or replaced.
// The directory is watched since editors often replace files on save.
// Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}
	l := log.Default().Named("course.watch")
	l.Debug("watching course file", log.String("path", abs))

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
					ev.Has(fsnotify.Rename) {

					l.Debug("course file changed",
						log.String("path", abs), log.String("op", ev.Op.String()))
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.Warn("watcher error", log.ErrorField(err))
			}
		}
	}()
	return nil
}

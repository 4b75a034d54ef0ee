package main

import (
	"net/url"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/scratch"
)

func isURL(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// watchFile calls changed whenever name is written or replaced. The parent
// directory is watched so editors that save by renaming are noticed too.
func watchFile(name string, changed func()) (*fsnotify.Watcher, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					changed()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				scratch.Logger().Warn("mask watcher", "err", err)
			}
		}
	}()
	return w, nil
}

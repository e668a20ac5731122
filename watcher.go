package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pipe01/bearbones/internal/workspace"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("bearbones.watcher")

type Watcher struct {
	mu            sync.Mutex
	watchingDirs  map[string]struct{}
	watchingFiles map[string]string

	ws      *workspace.Workspace
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewWatcher(ws *workspace.Workspace) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]string),
		ws:            ws,
		watcher:       watcher,
		done:          make(chan struct{}),
	}
	go w.eventLoop()

	return w, nil
}

// WatchFile starts watching path. Editors often replace files instead of
// writing to them, so the parent directory is what gets watched.
func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.watchingFiles[fullPath] = path

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

// Close stops watching and waits for any file being lexed to finish.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			w.mu.Lock()
			path, ok := w.watchingFiles[fname]
			w.mu.Unlock()

			if !ok {
				continue
			}

			w.fileModified(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Errorf("error: %s", err)
		}
	}
}

func (w *Watcher) fileModified(path string) {
	watchLog.Infof("file %q modified, lexing again...", filepath.Base(path))

	w.ws.Invalidate(path)

	err := lexFile(w.ws, path)
	if err != nil && !errors.Is(err, errLexFailed) {
		watchLog.Errorf("failed to lex file %q: %s", path, err)
	}
}

package vault

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

// Watcher forwards filesystem change notifications into the heading index:
// creates and writes schedule a debounced reindex, removes and renames drop
// the old entries. fsnotify reports a rename only by its old path, so the
// paired rename handling stays with hosts that know both ids.
type Watcher struct {
	vault  *Vault
	index  *index.Index
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watch starts watching the vault tree and feeding ix. The returned watcher
// owns a background event loop until Close.
func (v *Vault) Watch(ix *index.Index) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{vault: v, index: ix, fsw: fsw, cancel: cancel}

	if err := w.addWatches(v.root); err != nil {
		cancel()
		fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run(ctx)

	log.Debugf("watching vault at %s", v.root)
	return w, nil
}

// addWatches recursively adds watches on every non-hidden directory.
func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			log.Warnf("cannot watch %s: %v", p, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(ev.Name), ".") {
				if err := w.addWatches(ev.Name); err != nil {
					log.Warnf("cannot watch new directory %s: %v", ev.Name, err)
				}
			}
			return
		}
	}

	id, ok := w.vault.idFor(ev.Name)
	if !ok {
		return
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.index.ScheduleReindex(id)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.index.HandleRemoval(id)
	}
}

// Close releases the watcher and waits for its event loop to exit.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

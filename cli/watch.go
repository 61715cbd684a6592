package cli

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchAndRerun runs fn once immediately, then again every time one
// of paths changes on disk, until the watcher's process is killed.
func watchAndRerun(paths []string, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if err := fn(); err != nil {
		log.Printf("mars: %v", err)
	}

	watched := map[string]bool{}
	for _, p := range paths {
		abs, _ := filepath.Abs(p)
		watched[abs] = true
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Printf("mars: %s changed, re-running", event.Name)
			if err := fn(); err != nil {
				log.Printf("mars: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("mars: watch error: %v", err)
		}
	}
}

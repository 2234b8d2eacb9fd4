package server

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"duplocloud-mcp/internal/config"
)

// watchConfig calls onChange whenever the config file or a drop-in file is
// written, created, renamed or removed. Directories are watched rather than
// files so that editors that replace the file on save keep triggering. The
// returned func stops the watcher.
func watchConfig(path string, onChange func()) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	dropIns := filepath.Clean(config.DropInDir(path))
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	// The drop-in directory is optional.
	_ = watcher.Add(dropIns)

	relevant := func(name string) bool {
		name = filepath.Clean(name)
		if name == path {
			return true
		}
		return filepath.Dir(name) == dropIns && strings.HasSuffix(name, ".toml")
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod || !relevant(event.Name) {
					continue
				}
				klog.V(4).InfoS("config change detected", "file", event.Name, "op", event.Op.String())
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				klog.ErrorS(err, "config watcher error")
			}
		}
	}()
	return watcher.Close, nil
}

package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/facemood/internal/logger"
)

// DropDir watches one directory and reports files that land in it. Files
// are reported by path; deciding whether they are images is left to the
// view so that non-images surface the usual selection error.
type DropDir struct {
	dir     string
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

// NewDropDir starts watching dir
func NewDropDir(dir string, log *logger.Logger) (*DropDir, error) {
	if log == nil {
		log = logger.Nop()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("drop directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("drop directory %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &DropDir{dir: dir, watcher: watcher, log: log.WithComponent("watch")}, nil
}

// Dir returns the watched directory
func (d *DropDir) Dir() string {
	return d.dir
}

// Run delivers dropped file paths until ctx is done, then closes the
// watcher and the returned channel
func (d *DropDir) Run(ctx context.Context) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)
		defer cleanupWatcher(d.watcher, d.log)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-d.watcher.Events:
				if !ok {
					return
				}
				if !isDrop(event) || ignored(event.Name) {
					continue
				}
				d.log.Debug("file dropped: %s", event.Name)
				select {
				case out <- event.Name:
				case <-ctx.Done():
					return
				}

			case err, ok := <-d.watcher.Errors:
				if !ok {
					return
				}
				d.log.Warn("watch error: %v", err)
			}
		}
	}()

	return out
}

// isDrop accepts creations and moves into the directory. Writes are skipped
// so a file being copied in is reported once, on creation.
func isDrop(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create)
}

// ignored filters editor swap files and partial downloads
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, suffix := range []string{".part", ".crdownload", ".tmp", "~"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Debug("failed to close watcher: %v", err)
	}
}

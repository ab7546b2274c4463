package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ksyq12/confgen/internal/logger"
)

// DefaultDebounce is how long Watch waits after the last change before
// regenerating.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc receives the result of each regeneration triggered by Watch.
type RunFunc func(*Report, error)

// Watch regenerates the output whenever a template changes, or, with SSL
// enabled, when a certificate appears or changes below the certificate
// root. It blocks until ctx is done. Generation is never run concurrently.
func (g *Generator) Watch(ctx context.Context, debounce time.Duration, onRun RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(g.templates.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", g.templates.Dir, err)
	}
	g.log.Infof("Watching %s for template changes", g.templates.Dir)

	if g.cfg.EnableSSL {
		g.watchCerts(w)
	}

	var timer *time.Timer
	trigger := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			g.log.Infof("Stopping watcher")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(g.certs.Root) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					g.addWatch(w, event.Name)
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			g.log.Debugf("Change detected: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			g.log.Errorf("File watcher error: %v", err)

		case <-trigger:
			report, err := g.Generate(ctx)
			if onRun != nil {
				onRun(report, err)
			}
		}
	}
}

// watchCerts adds the certificate root and each domain directory below it.
func (g *Generator) watchCerts(w *fsnotify.Watcher) {
	root := g.certs.Root
	if _, err := os.Stat(root); err != nil {
		g.log.Warnf("Certificate root %s not found, certificate changes will not trigger regeneration", root)
		return
	}
	g.addWatch(w, root)

	entries, err := os.ReadDir(root)
	if err != nil {
		g.log.Warnf("Failed to read certificate root %s: %v", root, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			g.addWatch(w, filepath.Join(root, entry.Name()))
		}
	}
}

func (g *Generator) addWatch(w *fsnotify.Watcher, path string) {
	if err := w.Add(path); err != nil {
		g.log.Log(logger.LevelWarn, "Failed to watch directory", logger.Fields{"path": path, "error": err})
		return
	}
	g.log.Debugf("Watching %s", path)
}

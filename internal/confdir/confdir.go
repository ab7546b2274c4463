// Package confdir manages the generated files in the nginx output
// directory.
package confdir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gerrors "github.com/ksyq12/confgen/internal/errors"
	"github.com/ksyq12/confgen/internal/logger"
)

// Extension marks files owned by the generator
const Extension = ".conf"

// Dir is an output directory of generated .conf files.
type Dir struct {
	path string
	log  *logger.Logger
}

// New creates a Dir for path. A nil log uses the global logger.
func New(path string, log *logger.Logger) *Dir {
	if log == nil {
		log = logger.Default()
	}
	return &Dir{path: path, log: log}
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// File returns the path of a file name inside the directory.
func (d *Dir) File(name string) string {
	return filepath.Join(d.path, name)
}

// ConfName returns the output file name for a domain.
func ConfName(domain string) string {
	return domain + Extension
}

// IsGenerated reports whether name looks like a file this tool owns:
// a .conf file that is not hidden.
func IsGenerated(name string) bool {
	return strings.HasSuffix(name, Extension) && !strings.HasPrefix(name, ".")
}

// List returns the names of generated files in the directory, sorted.
// Failure to read the directory is returned as a DIRECTORY error.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, gerrors.WrapPath(gerrors.ErrCodeDirectory, "failed to list output directory", d.path, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsGenerated(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ClearResult reports the outcome of ClearStale.
type ClearResult struct {
	Removed []string
	Kept    []string
	Failed  map[string]error
}

// ClearStale removes every generated file whose name is not in protected.
// Only a listing failure is returned; individual removal failures are
// logged and collected in the result.
func (d *Dir) ClearStale(protected ...string) (*ClearResult, error) {
	names, err := d.List()
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(protected))
	for _, p := range protected {
		keep[p] = true
	}

	result := &ClearResult{Failed: make(map[string]error)}
	for _, name := range names {
		if keep[name] {
			result.Kept = append(result.Kept, name)
			continue
		}

		path := d.File(name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.log.Log(logger.LevelError, "Failed to remove stale config", logger.Fields{"path": path, "error": err})
			result.Failed[name] = err
			continue
		}
		d.log.Debugf("Removed stale config %s", path)
		result.Removed = append(result.Removed, name)
	}
	return result, nil
}

// Write writes content to name, replacing any existing file.
func (d *Dir) Write(name, content string) (string, error) {
	path := d.File(name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, gerrors.WrapPath(gerrors.ErrCodeIO, "failed to write config", path, err)
	}
	return path, nil
}

// Remove deletes name. It reports whether a file was removed; a missing
// file is not an error.
func (d *Dir) Remove(name string) (bool, error) {
	path := d.File(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, gerrors.WrapPath(gerrors.ErrCodeIO, "failed to remove config", path, err)
	}
	return true, nil
}

// Exists reports whether name is present in the directory.
func (d *Dir) Exists(name string) bool {
	_, err := os.Lstat(d.File(name))
	return err == nil
}

package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed defaults/*.template
var defaultTemplates embed.FS

// Default returns the built-in content of a template name.
func Default(name string) (string, error) {
	data, err := defaultTemplates.ReadFile("defaults/" + name)
	if err != nil {
		return "", fmt.Errorf("no built-in template %s", name)
	}
	return string(data), nil
}

// InstallResult lists what WriteDefaults did per template.
type InstallResult struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// WriteDefaults copies the built-in templates into dir, creating it if
// needed. Existing files are left alone unless force is set.
func WriteDefaults(dir string, force bool) (*InstallResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create templates directory: %w", err)
	}

	result := &InstallResult{Written: []string{}, Skipped: []string{}}
	for _, name := range Names() {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				result.Skipped = append(result.Skipped, path)
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				return result, fmt.Errorf("failed to check %s: %w", path, err)
			}
		}

		content, err := Default(name)
		if err != nil {
			return result, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Written = append(result.Written, path)
	}
	return result, nil
}

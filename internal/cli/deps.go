package cli

import (
	"os"

	"github.com/ksyq12/confgen/internal/config"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
}

// ConfigLoader builds the run configuration
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader: NewEnvConfigLoader(os.LookupEnv),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type envConfigLoader struct {
	lookup config.LookupFunc
}

// NewEnvConfigLoader returns a ConfigLoader reading variables through lookup.
func NewEnvConfigLoader(lookup config.LookupFunc) ConfigLoader {
	return &envConfigLoader{lookup: lookup}
}

func (l *envConfigLoader) Load(path string) (*config.Config, error) {
	return config.Load(l.lookup, path)
}

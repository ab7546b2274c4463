package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	gerrors "github.com/ksyq12/confgen/internal/errors"
)

// Environment variable names
const (
	EnvDomains         = "DOMAINS"
	EnvServerIP        = "SERVER_IP"
	EnvEnableSSL       = "ENABLE_SSL"
	EnvWildcardEnabled = "WILDCARD_LOCALHOST_TARGET"
	EnvWildcardPorts   = "WILDCARD_LOCALHOST_PORTS"
	EnvTemplatesDir    = "TEMPLATES_DIR"
	EnvOutputDir       = "OUTPUT_DIR"
	EnvCertRoot        = "CERT_ROOT"
	EnvRequireDomains  = "REQUIRE_DOMAINS"
	EnvConfigFile      = "CONFGEN_CONFIG"
)

// Defaults for values not supplied by the environment or settings file
const (
	DefaultServerIP     = "127.0.0.1"
	DefaultTemplatesDir = "/etc/nginx/conf.d/templates"
	DefaultOutputDir    = "/etc/nginx/conf.d"
	DefaultCertRoot     = "/etc/letsencrypt/live"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Value is a raw environment value together with whether it was set.
type Value struct {
	Raw     string
	Present bool
}

// Config is built once at startup and passed to every component.
type Config struct {
	Domains         Value
	ServerIP        string
	EnableSSL       bool
	WildcardEnabled bool
	WildcardPorts   Value
	TemplatesDir    string
	OutputDir       string
	CertRoot        string
	RequireDomains  bool

	// Source is the settings file that was read, if any.
	Source string
}

// FileSettings mirrors the optional YAML settings file.
// Pointer fields distinguish "unset" from zero values.
type FileSettings struct {
	ServerIP       *string           `yaml:"server_ip"`
	EnableSSL      *bool             `yaml:"enable_ssl"`
	TemplatesDir   *string           `yaml:"templates_dir"`
	OutputDir      *string           `yaml:"output_dir"`
	CertRoot       *string           `yaml:"cert_root"`
	RequireDomains *bool             `yaml:"require_domains"`
	Domains        map[string]int    `yaml:"domains"`
	Wildcard       *WildcardSettings `yaml:"wildcard"`
}

// WildcardSettings is the wildcard section of the settings file.
type WildcardSettings struct {
	Enabled *bool          `yaml:"enabled"`
	Ports   map[string]int `yaml:"ports"`
}

// New creates a Config with default values
func New() *Config {
	return &Config{
		ServerIP:     DefaultServerIP,
		TemplatesDir: DefaultTemplatesDir,
		OutputDir:    DefaultOutputDir,
		CertRoot:     DefaultCertRoot,
	}
}

// Load builds a Config. Values from the settings file at path (or the file
// named by CONFGEN_CONFIG when path is empty) are applied first, then the
// environment overrides them.
func Load(lookup LookupFunc, path string) (*Config, error) {
	cfg := New()

	if path == "" {
		if v, ok := lookup(EnvConfigFile); ok {
			path = strings.TrimSpace(v)
		}
	}
	if path != "" {
		fs, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.apply(fs)
		cfg.Source = path
	}

	cfg.applyEnv(lookup)
	return cfg, nil
}

// ReadFile parses a YAML settings file.
func ReadFile(path string) (*FileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerrors.WrapPath(gerrors.ErrCodeConfig, "failed to read config", path, err)
	}

	fs := &FileSettings{}
	if err := yaml.Unmarshal(data, fs); err != nil {
		return nil, gerrors.WrapPath(gerrors.ErrCodeConfig, "failed to parse config", path, err)
	}
	return fs, nil
}

func (c *Config) apply(fs *FileSettings) {
	if fs.ServerIP != nil {
		c.ServerIP = *fs.ServerIP
	}
	if fs.EnableSSL != nil {
		c.EnableSSL = *fs.EnableSSL
	}
	if fs.TemplatesDir != nil {
		c.TemplatesDir = *fs.TemplatesDir
	}
	if fs.OutputDir != nil {
		c.OutputDir = *fs.OutputDir
	}
	if fs.CertRoot != nil {
		c.CertRoot = *fs.CertRoot
	}
	if fs.RequireDomains != nil {
		c.RequireDomains = *fs.RequireDomains
	}
	if len(fs.Domains) > 0 {
		c.Domains = Value{Raw: joinPorts(fs.Domains), Present: true}
	}
	if fs.Wildcard != nil {
		if fs.Wildcard.Enabled != nil {
			c.WildcardEnabled = *fs.Wildcard.Enabled
		}
		if len(fs.Wildcard.Ports) > 0 {
			c.WildcardPorts = Value{Raw: joinPorts(fs.Wildcard.Ports), Present: true}
		}
	}
}

func (c *Config) applyEnv(lookup LookupFunc) {
	if v, ok := lookup(EnvDomains); ok {
		c.Domains = Value{Raw: v, Present: true}
	}
	if v, ok := lookup(EnvServerIP); ok && strings.TrimSpace(v) != "" {
		c.ServerIP = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvEnableSSL); ok {
		c.EnableSSL = ParseBool(v)
	}
	if v, ok := lookup(EnvWildcardEnabled); ok {
		c.WildcardEnabled = ParseBool(v)
	}
	if v, ok := lookup(EnvWildcardPorts); ok {
		c.WildcardPorts = Value{Raw: v, Present: true}
	}
	if v, ok := lookup(EnvTemplatesDir); ok && v != "" {
		c.TemplatesDir = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvCertRoot); ok && v != "" {
		c.CertRoot = v
	}
	if v, ok := lookup(EnvRequireDomains); ok {
		c.RequireDomains = ParseBool(v)
	}
}

// ParseBool reports whether v is "true", ignoring case and surrounding
// whitespace. Anything else is false.
func ParseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// Validate checks settings that would make a run meaningless.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return gerrors.Validation("output directory cannot be empty")
	}
	if c.TemplatesDir == "" {
		return gerrors.Validation("templates directory cannot be empty")
	}
	if c.RequireDomains && (!c.Domains.Present || strings.TrimSpace(c.Domains.Raw) == "") {
		return gerrors.ErrDomainsRequired
	}
	return nil
}

// joinPorts renders a settings-file map in the DOMAINS list format so both
// sources go through the same parser.
func joinPorts(m map[string]int) string {
	keys := lo.Keys(m)
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
	}
	return strings.Join(parts, ",")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	gerrors "github.com/ksyq12/confgen/internal/errors"
)

// envMap returns a LookupFunc backed by m
func envMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.ServerIP != "127.0.0.1" {
		t.Errorf("expected 127.0.0.1, got %s", cfg.ServerIP)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected %s, got %s", DefaultOutputDir, cfg.OutputDir)
	}
	if cfg.TemplatesDir != DefaultTemplatesDir {
		t.Errorf("expected %s, got %s", DefaultTemplatesDir, cfg.TemplatesDir)
	}
	if cfg.EnableSSL || cfg.WildcardEnabled {
		t.Error("SSL and wildcard should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("empty environment", func(t *testing.T) {
		cfg, err := Load(envMap(nil), "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Domains.Present {
			t.Error("DOMAINS should not be present")
		}
		if cfg.WildcardPorts.Present {
			t.Error("WILDCARD_LOCALHOST_PORTS should not be present")
		}
		if cfg.Source != "" {
			t.Errorf("expected no settings file, got %s", cfg.Source)
		}
	})

	t.Run("all variables", func(t *testing.T) {
		cfg, err := Load(envMap(map[string]string{
			EnvDomains:         `{"a.com":8080}`,
			EnvServerIP:        "10.0.0.1",
			EnvEnableSSL:       "TRUE",
			EnvWildcardEnabled: "True",
			EnvWildcardPorts:   "app:3000,*:80",
			EnvTemplatesDir:    "/tmp/templates",
			EnvOutputDir:       "/tmp/out",
			EnvCertRoot:        "/tmp/certs",
			EnvRequireDomains:  "true",
		}), "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !cfg.Domains.Present || cfg.Domains.Raw != `{"a.com":8080}` {
			t.Errorf("unexpected domains %+v", cfg.Domains)
		}
		if cfg.ServerIP != "10.0.0.1" {
			t.Errorf("expected 10.0.0.1, got %s", cfg.ServerIP)
		}
		if !cfg.EnableSSL {
			t.Error("expected SSL enabled")
		}
		if !cfg.WildcardEnabled {
			t.Error("expected wildcard enabled")
		}
		if cfg.WildcardPorts.Raw != "app:3000,*:80" {
			t.Errorf("unexpected wildcard ports %q", cfg.WildcardPorts.Raw)
		}
		if cfg.TemplatesDir != "/tmp/templates" || cfg.OutputDir != "/tmp/out" || cfg.CertRoot != "/tmp/certs" {
			t.Errorf("unexpected paths: %+v", cfg)
		}
		if !cfg.RequireDomains {
			t.Error("expected RequireDomains")
		}
	})

	t.Run("empty SERVER_IP keeps default", func(t *testing.T) {
		cfg, err := Load(envMap(map[string]string{EnvServerIP: "  "}), "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.ServerIP != DefaultServerIP {
			t.Errorf("expected default server IP, got %q", cfg.ServerIP)
		}
	})

	t.Run("empty DOMAINS is present", func(t *testing.T) {
		cfg, err := Load(envMap(map[string]string{EnvDomains: ""}), "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !cfg.Domains.Present {
			t.Error("empty DOMAINS should still be marked present")
		}
	})
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{
		"true":   true,
		"TRUE":   true,
		" True ": true,
		"false":  false,
		"1":      false,
		"yes":    false,
		"":       false,
	}
	for in, want := range tests {
		if got := ParseBool(in); got != want {
			t.Errorf("ParseBool(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "confgen.yaml")
	content := `server_ip: 10.1.1.1
enable_ssl: true
output_dir: /srv/out
domains:
  b.com: 9090
  a.com: 8080
wildcard:
  enabled: true
  ports:
    "*": 81
    app: 3000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(envMap(nil), path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Source != path {
			t.Errorf("expected source %s, got %s", path, cfg.Source)
		}
		if cfg.ServerIP != "10.1.1.1" {
			t.Errorf("expected 10.1.1.1, got %s", cfg.ServerIP)
		}
		if !cfg.EnableSSL {
			t.Error("expected SSL enabled from file")
		}
		if cfg.OutputDir != "/srv/out" {
			t.Errorf("expected /srv/out, got %s", cfg.OutputDir)
		}
		if cfg.TemplatesDir != DefaultTemplatesDir {
			t.Errorf("unset templates_dir should keep default, got %s", cfg.TemplatesDir)
		}
		if cfg.Domains.Raw != "a.com:8080,b.com:9090" {
			t.Errorf("unexpected domains %q", cfg.Domains.Raw)
		}
		if !cfg.WildcardEnabled {
			t.Error("expected wildcard enabled from file")
		}
		if cfg.WildcardPorts.Raw != "*:81,app:3000" {
			t.Errorf("unexpected wildcard ports %q", cfg.WildcardPorts.Raw)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		cfg, err := Load(envMap(map[string]string{
			EnvServerIP:  "192.168.0.1",
			EnvEnableSSL: "false",
			EnvDomains:   "c.com",
		}), path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.ServerIP != "192.168.0.1" {
			t.Errorf("expected env server IP, got %s", cfg.ServerIP)
		}
		if cfg.EnableSSL {
			t.Error("expected env to disable SSL")
		}
		if cfg.Domains.Raw != "c.com" {
			t.Errorf("expected env domains, got %q", cfg.Domains.Raw)
		}
	})

	t.Run("path from CONFGEN_CONFIG", func(t *testing.T) {
		cfg, err := Load(envMap(map[string]string{EnvConfigFile: path}), "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Source != path {
			t.Errorf("expected settings from %s, got %q", path, cfg.Source)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(envMap(nil), filepath.Join(dir, "missing.yaml"))
		if err == nil {
			t.Fatal("expected error for missing settings file")
		}
		if !gerrors.Is(err, gerrors.ErrConfigInvalid) {
			t.Errorf("expected CONFIG error, got %v", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("server_ip: [unclosed"), 0644); err != nil {
			t.Fatalf("failed to write settings: %v", err)
		}
		_, err := Load(envMap(nil), bad)
		if err == nil {
			t.Fatal("expected error for malformed settings file")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		if err := New().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("required domains missing", func(t *testing.T) {
		cfg := New()
		cfg.RequireDomains = true
		err := cfg.Validate()
		if !gerrors.Is(err, gerrors.ErrDomainsRequired) {
			t.Errorf("expected ErrDomainsRequired, got %v", err)
		}
	})

	t.Run("required domains empty", func(t *testing.T) {
		for _, raw := range []string{"", "   "} {
			cfg, err := Load(envMap(map[string]string{
				EnvDomains:        raw,
				EnvRequireDomains: "true",
			}), "")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if err := cfg.Validate(); !gerrors.Is(err, gerrors.ErrDomainsRequired) {
				t.Errorf("DOMAINS=%q: expected ErrDomainsRequired, got %v", raw, err)
			}
		}
	})

	t.Run("required domains present", func(t *testing.T) {
		cfg := New()
		cfg.RequireDomains = true
		cfg.Domains = Value{Raw: "a.com", Present: true}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty output dir", func(t *testing.T) {
		cfg := New()
		cfg.OutputDir = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty output dir")
		}
	})
}

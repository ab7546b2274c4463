package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gerrors "github.com/ksyq12/confgen/internal/errors"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		data     Data
		expected string
	}{
		{
			name:     "all placeholders",
			content:  "server_name {{DOMAIN}}; proxy_pass http://{{SERVER_IP}}:{{PORT}};",
			data:     Data{Domain: "a.com", Port: 8080, ServerIP: "127.0.0.1"},
			expected: "server_name a.com; proxy_pass http://127.0.0.1:8080;",
		},
		{
			name:     "repeated placeholders",
			content:  "{{DOMAIN}} {{DOMAIN}} {{PORT}}{{PORT}}",
			data:     Data{Domain: "b.com", Port: 1},
			expected: "b.com b.com 11",
		},
		{
			name:     "nginx variables untouched",
			content:  "proxy_set_header Host $host; {{ not a token }} {{domain}}",
			data:     Data{Domain: "a.com", Port: 80},
			expected: "proxy_set_header Host $host; {{ not a token }} {{domain}}",
		},
		{
			name:     "value is not re-expanded",
			content:  "{{DOMAIN}}",
			data:     Data{Domain: "{{PORT}}", Port: 80},
			expected: "{{PORT}}",
		},
		{
			name:     "empty template",
			content:  "",
			data:     Data{Domain: "a.com", Port: 80},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.content, tt.data); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir)
	if err := os.WriteFile(filepath.Join(dir, HTTP), []byte("server {{DOMAIN}}"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	t.Run("Load existing", func(t *testing.T) {
		content, err := loader.Load(HTTP)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if content != "server {{DOMAIN}}" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("Load missing", func(t *testing.T) {
		_, err := loader.Load(HTTPS)
		if err == nil {
			t.Fatal("expected error for missing template")
		}
		if !gerrors.Is(err, gerrors.ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), filepath.Join(dir, HTTPS)) {
			t.Errorf("error should name the path: %v", err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		if !loader.Exists(HTTP) {
			t.Error("expected http template to exist")
		}
		if loader.Exists(Wildcard) {
			t.Error("expected wildcard template to be missing")
		}
	})
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("listen {{PORT}}; server_name {{DOMAIN}};")
	if len(got) != 2 || got[0] != PlaceholderDomain || got[1] != PlaceholderPort {
		t.Errorf("Placeholders() = %v", got)
	}
	if len(Placeholders("no tokens")) != 0 {
		t.Error("expected no placeholders")
	}
}

func TestDefaults(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			content, err := Default(name)
			if err != nil {
				t.Fatalf("Default(%s) failed: %v", name, err)
			}
			if content == "" {
				t.Error("expected non-empty built-in template")
			}
		})
	}

	http, _ := Default(HTTP)
	rendered := Render(http, Data{Domain: "a.com", Port: 8080, ServerIP: "10.0.0.1"})
	for _, want := range []string{"server_name a.com;", "proxy_pass http://10.0.0.1:8080;"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected rendered http template to contain %q", want)
		}
	}

	https, _ := Default(HTTPS)
	rendered = Render(https, Data{Domain: "a.com", Port: 8080, ServerIP: "10.0.0.1"})
	for _, want := range []string{"listen 443 ssl", "/etc/letsencrypt/live/a.com/fullchain.pem", "return 301 https://"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected rendered https template to contain %q", want)
		}
	}

	wildcard, _ := Default(Wildcard)
	if len(Placeholders(wildcard)) != 0 {
		t.Error("wildcard template should not contain placeholders")
	}
	if !strings.Contains(wildcard, "$wildcard_port") {
		t.Error("wildcard template should use the map variable")
	}

	if _, err := Default("missing.template"); err == nil {
		t.Error("expected error for unknown built-in")
	}
}

func TestWriteDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")

	result, err := WriteDefaults(dir, false)
	if err != nil {
		t.Fatalf("WriteDefaults failed: %v", err)
	}
	if len(result.Written) != 3 || len(result.Skipped) != 0 {
		t.Errorf("unexpected result %+v", result)
	}

	custom := filepath.Join(dir, HTTP)
	if err := os.WriteFile(custom, []byte("custom"), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	t.Run("existing kept without force", func(t *testing.T) {
		result, err := WriteDefaults(dir, false)
		if err != nil {
			t.Fatalf("WriteDefaults failed: %v", err)
		}
		if len(result.Written) != 0 || len(result.Skipped) != 3 {
			t.Errorf("unexpected result %+v", result)
		}
		data, _ := os.ReadFile(custom)
		if string(data) != "custom" {
			t.Error("custom template was overwritten")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		result, err := WriteDefaults(dir, true)
		if err != nil {
			t.Fatalf("WriteDefaults failed: %v", err)
		}
		if len(result.Written) != 3 {
			t.Errorf("unexpected result %+v", result)
		}
		data, _ := os.ReadFile(custom)
		if string(data) == "custom" {
			t.Error("custom template should be overwritten with force")
		}
	})
}

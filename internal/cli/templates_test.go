package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ksyq12/confgen/internal/config"
	"github.com/ksyq12/confgen/internal/template"
)

func TestRunTemplatesInit(t *testing.T) {
	tests := []struct {
		name     string
		force    bool
		existing string
		want     string
	}{
		{
			name: "fresh directory",
			want: "",
		},
		{
			name:     "keeps existing without force",
			existing: "custom",
			want:     "custom",
		},
		{
			name:     "overwrites with force",
			force:    true,
			existing: "custom",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLI(t)
			dir := filepath.Join(t.TempDir(), "templates")
			if tt.existing != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, template.HTTP), []byte(tt.existing), 0644); err != nil {
					t.Fatal(err)
				}
			}
			SetDeps(NewMockDeps().WithEnv(env.vars(map[string]string{
				config.EnvTemplatesDir: dir,
			})).Build())
			forceTemplates = tt.force

			if err := runTemplatesInit(templatesInitCmd, nil); err != nil {
				t.Fatalf("runTemplatesInit() error = %v", err)
			}

			for _, name := range template.Names() {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("%s not installed: %v", name, err)
				}
			}

			want := tt.want
			if want == "" {
				want, _ = template.Default(template.HTTP)
			}
			got, err := os.ReadFile(filepath.Join(dir, template.HTTP))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != want {
				t.Errorf("%s = %q, want %q", template.HTTP, got, want)
			}
		})
	}
}

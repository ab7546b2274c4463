package template

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gerrors "github.com/ksyq12/confgen/internal/errors"
)

// Template file names inside the templates directory
const (
	HTTP     = "http.conf.template"
	HTTPS    = "https.conf.template"
	Wildcard = "wildcard.localhost.conf.template"
)

// Placeholders replaced in the HTTP and HTTPS templates
const (
	PlaceholderDomain   = "{{DOMAIN}}"
	PlaceholderPort     = "{{PORT}}"
	PlaceholderServerIP = "{{SERVER_IP}}"
)

// Names returns all template file names.
func Names() []string {
	return []string{HTTP, HTTPS, Wildcard}
}

// Data contains the values substituted into a domain template
type Data struct {
	Domain   string
	Port     int
	ServerIP string
}

// Loader reads templates from a directory.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader for dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Path returns the full path of a template name.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.Dir, name)
}

// Load reads a template. A missing file returns an error matching
// errors.ErrTemplateNotFound.
func (l *Loader) Load(name string) (string, error) {
	path := l.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", gerrors.WrapPath(gerrors.ErrCodeTemplate, "template not found", path, nil)
		}
		return "", gerrors.WrapPath(gerrors.ErrCodeTemplate, "failed to read template", path, err)
	}
	return string(data), nil
}

// Exists reports whether a template file is present.
func (l *Loader) Exists(name string) bool {
	info, err := os.Stat(l.Path(name))
	return err == nil && !info.IsDir()
}

// Render replaces the placeholders in content. This is literal substring
// replacement; no other syntax in the template is interpreted.
func Render(content string, data Data) string {
	r := strings.NewReplacer(
		PlaceholderDomain, data.Domain,
		PlaceholderPort, strconv.Itoa(data.Port),
		PlaceholderServerIP, data.ServerIP,
	)
	return r.Replace(content)
}

// Placeholders returns the known placeholders found in content.
func Placeholders(content string) []string {
	var found []string
	for _, p := range []string{PlaceholderDomain, PlaceholderPort, PlaceholderServerIP} {
		if strings.Contains(content, p) {
			found = append(found, p)
		}
	}
	return found
}

// Package output prints user-facing results on stdout: colored status
// lines, tables and JSON. Diagnostics belong to the logger package.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.Bold)
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects all output. A nil writer restores os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// JSON outputs data as indented JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs rows under a header line and a separator.
// Cells beyond the header count are dropped; missing cells are blank.
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	w := writer()

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	line := func(pad func(i int) string) string {
		parts := make([]string, len(headers))
		for i := range headers {
			parts[i] = pad(i)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	_, _ = headerColor.Fprintln(w, line(func(i int) string {
		return fmt.Sprintf("%-*s", widths[i], headers[i])
	}))
	_, _ = fmt.Fprintln(w, line(func(i int) string {
		return strings.Repeat("-", widths[i])
	}))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, line(func(i int) string {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			return fmt.Sprintf("%-*s", widths[i], cell)
		}))
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Fprintf(writer(), "✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(writer(), "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Fprintf(writer(), "! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Fprintf(writer(), "→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(writer(), format+"\n", args...)
}

// YesNo renders a boolean for tables.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

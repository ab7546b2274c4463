package parser

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ksyq12/confgen/internal/logger"
	"github.com/ksyq12/confgen/internal/sanitize"
)

// DefaultLabel sets the fallback port in WILDCARD_LOCALHOST_PORTS.
const DefaultLabel = "*"

// WildcardTable maps subdomain labels to ports.
type WildcardTable struct {
	Routes      map[string]int `json:"routes"`
	DefaultPort int            `json:"default_port"`
	Skipped     []Skip         `json:"skipped,omitempty"`

	log *logger.Logger
}

// Labels returns the route labels in sorted order.
func (w *WildcardTable) Labels() []string {
	labels := lo.Keys(w.Routes)
	sort.Strings(labels)
	return labels
}

// Lookup returns the port for label, or the default port.
func (w *WildcardTable) Lookup(label string) int {
	if port, ok := w.Routes[label]; ok {
		return port
	}
	return w.DefaultPort
}

func (w *WildcardTable) skip(token, reason string) {
	w.log.Log(logger.LevelWarn, "Skipping wildcard port entry", logger.Fields{"token": token, "reason": reason})
	w.Skipped = append(w.Skipped, Skip{Token: token, Reason: reason})
}

// ParseWildcardPorts parses a WILDCARD_LOCALHOST_PORTS value using the
// global logger.
func ParseWildcardPorts(raw string, present bool) *WildcardTable {
	return New(nil).WildcardPorts(raw, present)
}

// WildcardPorts parses a WILDCARD_LOCALHOST_PORTS value. Bad tokens are
// skipped; the table is always usable.
func (p *Parser) WildcardPorts(raw string, present bool) *WildcardTable {
	table := &WildcardTable{
		Routes:      make(map[string]int),
		DefaultPort: DefaultPort,
		log:         p.log,
	}
	if !present {
		return table
	}

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		label, portStr, ok := strings.Cut(token, ":")
		if !ok {
			table.skip(token, "expected label:port")
			continue
		}
		port, err := parsePort(portStr)
		if err != nil {
			table.skip(token, err.Error())
			continue
		}

		label = strings.TrimSpace(label)
		if label == DefaultLabel {
			table.DefaultPort = port
			continue
		}
		clean := sanitize.Name(label)
		if clean == "" {
			table.skip(token, "label is empty after sanitizing")
			continue
		}
		table.Routes[clean] = port
	}

	p.log.Debugf("Parsed wildcard ports: %v (default %d)", table.Routes, table.DefaultPort)
	return table
}

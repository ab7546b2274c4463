package parser

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/ksyq12/confgen/internal/logger"
	"github.com/ksyq12/confgen/internal/sanitize"
)

// Format names the branch of the two-stage DOMAINS parse that produced a
// DomainSet.
type Format string

const (
	FormatNone Format = "none" // DOMAINS absent or empty
	FormatJSON Format = "json" // decoded as a JSON object
	FormatList Format = "list" // parsed as a domain[:port] list
)

// Entry is one domain to generate a config file for.
type Entry struct {
	Domain   string `json:"domain"`   // sanitized, used for the file name and {{DOMAIN}}
	Original string `json:"original"` // as written in DOMAINS, used for the certificate path
	Port     int    `json:"port"`
}

// DomainSet is the parsed DOMAINS value.
type DomainSet struct {
	Format  Format  `json:"format"`
	Entries []Entry `json:"entries"`
	Skipped []Skip  `json:"skipped,omitempty"`

	log *logger.Logger
}

// Ports returns the set as a domain to port map.
func (s *DomainSet) Ports() map[string]int {
	return lo.Associate(s.Entries, func(e Entry) (string, int) {
		return e.Domain, e.Port
	})
}

// add inserts an entry, replacing the port of an existing domain in place.
func (s *DomainSet) add(original string, port int) {
	original = strings.TrimSpace(original)
	domain := sanitize.Name(original)
	if domain == "" {
		s.skip(original, "domain is empty after sanitizing")
		return
	}
	// Hidden names are never cleared on later runs.
	if strings.HasPrefix(domain, ".") {
		s.skip(original, "domain starts with a dot")
		return
	}
	if !sanitize.IsClean(original) {
		s.log.Log(logger.LevelWarn, "Domain contains disallowed characters", logger.Fields{
			"domain":    original,
			"sanitized": domain,
		})
	}

	if _, idx, ok := lo.FindIndexOf(s.Entries, func(e Entry) bool { return e.Domain == domain }); ok {
		s.log.Debugf("Duplicate domain %s, using port %d", domain, port)
		s.Entries[idx].Port = port
		s.Entries[idx].Original = original
		return
	}
	s.Entries = append(s.Entries, Entry{Domain: domain, Original: original, Port: port})
}

func (s *DomainSet) skip(token, reason string) {
	s.log.Log(logger.LevelWarn, "Skipping DOMAINS entry", logger.Fields{"token": token, "reason": reason})
	s.Skipped = append(s.Skipped, Skip{Token: token, Reason: reason})
}

// Domains parses a DOMAINS value. present reports whether the variable was
// set at all. It never fails: unusable input yields an empty set.
func (p *Parser) Domains(raw string, present bool) *DomainSet {
	if !present || strings.TrimSpace(raw) == "" {
		p.log.Warnf("DOMAINS environment variable is not set, no domain configs will be generated")
		return &DomainSet{Format: FormatNone, log: p.log}
	}

	if pairs, ok := decodeObject(raw); ok {
		set := &DomainSet{Format: FormatJSON, log: p.log}
		for _, pair := range pairs {
			port, err := jsonPort(pair.value)
			if err != nil {
				set.skip(pair.key, err.Error())
				continue
			}
			set.add(pair.key, port)
		}
		p.log.Infof("Parsed domains as JSON: %v", set.Ports())
		return set
	}

	// Valid JSON that is not an object names no domains.
	if json.Valid([]byte(raw)) {
		set := &DomainSet{Format: FormatJSON, log: p.log}
		set.skip(strings.TrimSpace(raw), "JSON value is not an object")
		return set
	}

	set := &DomainSet{Format: FormatList, log: p.log}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		domain, portStr, hasPort := strings.Cut(token, ":")
		port := DefaultPort
		if hasPort {
			n, err := parsePort(portStr)
			if err != nil {
				set.skip(token, err.Error())
				continue
			}
			port = n
		}
		set.add(domain, port)
	}
	p.log.Infof("Parsed domains as list: %v", set.Ports())
	return set
}

type jsonPair struct {
	key   string
	value interface{}
}

// decodeObject decodes raw as a single JSON object, keeping key order.
// It reports false when raw is not exactly one JSON object.
func decodeObject(raw string) ([]jsonPair, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}

	var pairs []jsonPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		pairs = append(pairs, jsonPair{key: key, value: value})
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return pairs, true
}

// jsonPort accepts an integer number or a numeric string.
func jsonPort(v interface{}) (int, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, parseError("port %s is not an integer", val.String())
		}
		if n < 1 || n > MaxPort {
			return 0, parseError("port %d out of range 1-%d", n, MaxPort)
		}
		return int(n), nil
	case string:
		return parsePort(val)
	default:
		return 0, parseError("port must be a number or numeric string, got %T", v)
	}
}

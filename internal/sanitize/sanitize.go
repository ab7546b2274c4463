// Package sanitize strips characters that are not safe to use in a config
// file name or an nginx map key.
package sanitize

import "strings"

// Name removes every character outside [A-Za-z0-9.-].
// It is used for both full domains and single subdomain labels.
func Name(s string) string {
	return strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, s)
}

// IsClean reports whether s is already sanitized.
func IsClean(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !allowed(r) }) == -1
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-':
		return true
	}
	return false
}

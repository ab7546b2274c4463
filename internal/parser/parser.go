package parser

import (
	"fmt"
	"strconv"
	"strings"

	gerrors "github.com/ksyq12/confgen/internal/errors"
	"github.com/ksyq12/confgen/internal/logger"
)

// Parser parses routing values and logs every dropped token.
type Parser struct {
	log *logger.Logger
}

// New creates a Parser. A nil log uses the global logger.
func New(log *logger.Logger) *Parser {
	if log == nil {
		log = logger.Default()
	}
	return &Parser{log: log}
}

// DefaultPort is used when a domain has no explicit port and when the
// wildcard table has no "*" entry.
const DefaultPort = 80

// MaxPort is the largest accepted port.
const MaxPort = 65535

// Skip records an input token that was dropped and why.
type Skip struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// parsePort converts s to a port in 1..MaxPort.
func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, parseError("empty port")
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, parseError("port %q is not an integer", s)
	}
	return checkPort(port)
}

func checkPort(port int) (int, error) {
	if port < 1 || port > MaxPort {
		return 0, parseError("port %d out of range 1-%d", port, MaxPort)
	}
	return port, nil
}

func parseError(format string, args ...interface{}) error {
	return &gerrors.GenError{Code: gerrors.ErrCodeParse, Message: fmt.Sprintf(format, args...)}
}

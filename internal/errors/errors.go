// Package errors provides the error types used across confgen.
//
// GenError carries a Code that groups failures by the stage of the
// generation pipeline they came from, letting the CLI decide between a fatal
// exit and a logged, skipped entry.
//
// # Sentinel Errors
//
//	errors.ErrDirectoryUnreadable // output directory could not be listed (fatal)
//	errors.ErrTemplateNotFound    // template file missing for one entry
//	errors.ErrDomainsRequired     // DOMAINS absent while required
//	errors.ErrConfigInvalid       // settings file could not be parsed
//
// # Usage
//
//	return errors.Wrap(errors.ErrCodeDirectory, "failed to list output directory", err)
//
//	if errors.Is(err, errors.ErrDirectoryUnreadable) {
//	    os.Exit(1)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different pipeline stages.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"     // Settings could not be loaded
	ErrCodeParse      ErrorCode = "PARSE"      // Environment value could not be parsed
	ErrCodeTemplate   ErrorCode = "TEMPLATE"   // Template missing or unreadable
	ErrCodeDirectory  ErrorCode = "DIRECTORY"  // Output directory state unknown
	ErrCodeIO         ErrorCode = "IO"         // File write or removal failed
	ErrCodeSSL        ErrorCode = "SSL"        // Certificate lookup problem
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// GenError represents a structured error with context about the operation.
type GenError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Path    string    // File path involved (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *GenError) Error() string {
	msg := e.Message
	if e.Path != "" {
		if msg == "" {
			msg = e.Path
		} else {
			msg = fmt.Sprintf("%s %s", msg, e.Path)
		}
	}
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Domain != "" {
		return fmt.Sprintf("domain %s: %s", e.Domain, msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *GenError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *GenError) Is(target error) bool {
	t, ok := target.(*GenError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrDirectoryUnreadable indicates the output directory could not be listed.
	ErrDirectoryUnreadable = &GenError{Code: ErrCodeDirectory, Message: "output directory unreadable"}

	// ErrTemplateNotFound indicates a template file does not exist.
	ErrTemplateNotFound = &GenError{Code: ErrCodeTemplate, Message: "template not found"}

	// ErrDomainsRequired indicates DOMAINS was absent while required.
	ErrDomainsRequired = &GenError{Code: ErrCodeValidation, Message: "DOMAINS environment variable is not set"}

	// ErrConfigInvalid indicates the settings file is invalid or corrupt.
	ErrConfigInvalid = &GenError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &GenError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &GenError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapPath creates an error about a specific file.
func WrapPath(code ErrorCode, msg, path string, err error) error {
	return &GenError{
		Code:    code,
		Message: msg,
		Path:    path,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain string, err error) error {
	return &GenError{
		Code:   code,
		Domain: domain,
		Err:    err,
	}
}

// CodeOf returns the code of the first GenError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var ge *GenError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ErrCodeInternal
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As

// New is a re-export of errors.New for convenience.
var New = errors.New

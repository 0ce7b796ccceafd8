// Package errors provides custom error types for the funcsync system.
// These errors enable programmatic error checking for the fatal integrity
// violations of a cleaning run and for the recoverable per-line parse failures.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the funcsync system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrPairingMismatch indicates that a primary stream and its auxiliary
	// stream do not have the same number of lines
	ErrPairingMismatch = errors.New("pairing mismatch")

	// ErrEmptyIntersection indicates that no key is common to all streams
	ErrEmptyIntersection = errors.New("empty intersection")

	// ErrQuotaUnderfilled indicates that a stream could not supply its quota
	ErrQuotaUnderfilled = errors.New("quota underfilled")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// PairingError is raised when a primary stream and its auxiliary stream
// differ in line count. Index alignment between the two is then undefined,
// so the whole run is aborted.
type PairingError struct {
	Stream       string
	PrimaryPath  string
	AuxPath      string
	PrimaryLines int
	AuxLines     int
}

// Error implements the error interface
func (e *PairingError) Error() string {
	var b strings.Builder
	b.WriteString("pairing mismatch")
	if e.Stream != "" {
		fmt.Fprintf(&b, " for stream %s", e.Stream)
	}
	fmt.Fprintf(&b, ": %s has %d lines but %s has %d lines",
		orUnnamed(e.PrimaryPath, "primary"), e.PrimaryLines,
		orUnnamed(e.AuxPath, "auxiliary"), e.AuxLines)
	return b.String()
}

// Is implements errors.Is support
func (e *PairingError) Is(target error) bool {
	return target == ErrPairingMismatch
}

// NewPairingError creates a new PairingError
func NewPairingError(stream, primaryPath, auxPath string, primaryLines, auxLines int) *PairingError {
	return &PairingError{
		Stream:       stream,
		PrimaryPath:  primaryPath,
		AuxPath:      auxPath,
		PrimaryLines: primaryLines,
		AuxLines:     auxLines,
	}
}

// EmptyIntersectionError is raised when the streams share no key at all.
type EmptyIntersectionError struct {
	Streams []string
}

// Error implements the error interface
func (e *EmptyIntersectionError) Error() string {
	if len(e.Streams) > 0 {
		return fmt.Sprintf("no common keys across all %d streams (%s)", len(e.Streams), strings.Join(e.Streams, ", "))
	}
	return "no common keys across all streams"
}

// Is implements errors.Is support
func (e *EmptyIntersectionError) Is(target error) bool {
	return target == ErrEmptyIntersection
}

// NewEmptyIntersectionError creates a new EmptyIntersectionError
func NewEmptyIntersectionError(streams []string) *EmptyIntersectionError {
	return &EmptyIntersectionError{Streams: streams}
}

// QuotaError reports keys for which a stream supplied fewer rows than the
// quota demands.
type QuotaError struct {
	Stream string
	Keys   []string
}

// Error implements the error interface
func (e *QuotaError) Error() string {
	if e.Stream != "" {
		return fmt.Sprintf("stream %s could not fill quota for keys: %v", e.Stream, e.Keys)
	}
	return fmt.Sprintf("could not fill quota for keys: %v", e.Keys)
}

// Is implements errors.Is support
func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaUnderfilled
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", ...
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPairingMismatch checks if an error is a pairing-length error
func IsPairingMismatch(err error) bool {
	return errors.Is(err, ErrPairingMismatch)
}

// IsEmptyIntersection checks if an error reports an empty quota
func IsEmptyIntersection(err error) bool {
	return errors.Is(err, ErrEmptyIntersection)
}

// IsQuotaUnderfilled checks if an error reports an unfilled quota
func IsQuotaUnderfilled(err error) bool {
	return errors.Is(err, ErrQuotaUnderfilled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

func orUnnamed(path, fallback string) string {
	if path == "" {
		return fallback + " stream"
	}
	return path
}

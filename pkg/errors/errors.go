// Package errors provides the error taxonomy for the republisher.
// Expected per-unit outcomes (manual review, cleanup and publish failures)
// are modelled as typed errors that callers inspect with errors.Is and
// errors.As; only DuplicateDocumentError is fatal to a run.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As forward to the standard library so callers need one import.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinel errors for the republisher
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateDocument indicates a record set holds the same document twice
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrAmbiguousState indicates no single authoritative document could be selected
	ErrAmbiguousState = errors.New("ambiguous document state")

	// ErrNoSession indicates a unit has a candidate but no linked session
	ErrNoSession = errors.New("no session found")

	// ErrCleanupFailed indicates removal of published artifacts failed
	ErrCleanupFailed = errors.New("cleanup failed")

	// ErrPublishFailed indicates a publish call failed
	ErrPublishFailed = errors.New("publish failed")

	// ErrStoreUnavailable indicates the graph store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)

// DuplicateDocumentError is raised when a unit's record set contains two
// records for the same document. It aborts the whole run.
type DuplicateDocumentError struct {
	Unit     string
	Document string
}

// Error implements the error interface
func (e *DuplicateDocumentError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("duplicate document %s found for unit %s", e.Document, e.Unit)
	}
	return fmt.Sprintf("duplicate document %s found", e.Document)
}

// Is implements errors.Is support
func (e *DuplicateDocumentError) Is(target error) bool {
	return target == ErrDuplicateDocument
}

// NewDuplicateDocumentError creates a new DuplicateDocumentError
func NewDuplicateDocumentError(unit, document string) *DuplicateDocumentError {
	return &DuplicateDocumentError{Unit: unit, Document: document}
}

// AmbiguousStateError explains why a record set was routed to manual review.
type AmbiguousStateError struct {
	Unit   string
	Reason string
}

// Error implements the error interface
func (e *AmbiguousStateError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("ambiguous state for unit %s: %s", e.Unit, e.Reason)
	}
	return fmt.Sprintf("ambiguous state: %s", e.Reason)
}

// Is implements errors.Is support
func (e *AmbiguousStateError) Is(target error) bool {
	return target == ErrAmbiguousState
}

// NewAmbiguousStateError creates a new AmbiguousStateError
func NewAmbiguousStateError(unit, reason string) *AmbiguousStateError {
	return &AmbiguousStateError{Unit: unit, Reason: reason}
}

// StoreError represents a failed query or update against the graph store.
type StoreError struct {
	Operation  string // "query", "update", "probe"
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("store %s against %s failed (status %d): %s", e.Operation, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("store %s against %s failed: %s", e.Operation, e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreError) Is(target error) bool {
	if e.StatusCode == 0 || e.StatusCode >= 500 {
		return target == ErrStoreUnavailable
	}
	return false
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, endpoint string, statusCode int, err error) *StoreError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &StoreError{
		Operation:  operation,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// CleanupError aggregates the per-session failures of one cleanup pass.
type CleanupError struct {
	Unit     string
	Sessions map[string]error
}

// Error implements the error interface
func (e *CleanupError) Error() string {
	ids := make([]string, 0, len(e.Sessions))
	for id := range e.Sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		if cause := e.Sessions[id]; cause != nil {
			parts[i] = id + ": " + cause.Error()
		} else {
			parts[i] = id
		}
	}
	return fmt.Sprintf("cleanup failed for unit %s on %d session(s): %s", e.Unit, len(ids), strings.Join(parts, "; "))
}

// Is implements errors.Is support
func (e *CleanupError) Is(target error) bool {
	return target == ErrCleanupFailed
}

// PublishError represents a failed publish call for one document artifact.
type PublishError struct {
	Document   string
	Artifact   string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *PublishError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("publish %s for document %s returned status %d", e.Artifact, e.Document, e.StatusCode)
	}
	return fmt.Sprintf("publish %s for document %s: %v", e.Artifact, e.Document, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PublishError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PublishError) Is(target error) bool {
	return target == ErrPublishFailed
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "sparql-json", "datetime", ...
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close", "sync"
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

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDuplicateDocument)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreUnavailable checks if an error indicates the store could not be reached
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
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
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapStore wraps an error as a StoreError
func WrapStore(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(operation, endpoint, 0, err)
}

// Package errors provides centralized error definitions and error handling utilities
// for townreport. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package mirrors the four failure families the app distinguishes:
//   - PermissionError: camera or geolocation access refused by the platform
//   - PreconditionError: a user action attempted before its prerequisite
//     (reporting a location with no pin placed, uploading before a snapshot)
//   - ConfigError: a required setting such as the maps credential is absent
//   - LookupError: an unknown view identifier reached the navigator
//
// Semantic errors cover the remaining cases:
//   - ValidationError: invalid input (for example an empty display name)
//
// # Usage
//
//	err := errors.NewPermissionError("camera", errors.ErrPermissionDenied)
//	if errors.Is(err, errors.ErrPermissionDenied) { ... }
//
//	var lookup *errors.LookupError
//	if errors.As(err, &lookup) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors carry a severity and a user-facing flag. The severity picks both
// the level of the notice shown for the error and the level it is logged at.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for invariant violations.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Platform capability sentinel errors
var (
	// ErrPermissionDenied indicates the platform refused access to a capability.
	ErrPermissionDenied = New("permission denied")
	// ErrDeviceUnavailable indicates no device could serve the request.
	ErrDeviceUnavailable = New("device unavailable")
	// ErrStreamStopped indicates a read from a stream whose tracks were stopped.
	ErrStreamStopped = New("stream stopped")
)

// Report flow sentinel errors
var (
	// ErrNoPin indicates a location report was attempted without a placed pin.
	ErrNoPin = New("no pin placed")
	// ErrNoSnapshot indicates an upload was attempted before a frame was captured.
	ErrNoSnapshot = New("no snapshot captured")
	// ErrFeatureDisabled indicates the feature was disabled at startup.
	ErrFeatureDisabled = New("feature disabled")
)

// Configuration sentinel errors
var (
	// ErrMissingCredential indicates an external-service credential is unset.
	ErrMissingCredential = New("credential not configured")
)

// Navigation sentinel errors
var (
	// ErrViewNotFound indicates no container is registered for a view.
	ErrViewNotFound = New("view not found")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrUnsupportedFormat indicates a file format the decoder does not know.
	ErrUnsupportedFormat = New("unsupported format")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// AppError is the base interface for all townreport errors.
type AppError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// PermissionError represents a capability the user or platform refused.
//
// Example:
//
//	err := errors.NewPermissionError("camera", errors.ErrPermissionDenied)
//	fmt.Println(err) // "permission error [capability=camera]: access refused: permission denied"
type PermissionError struct {
	baseError
	Capability string
}

// NewPermissionError creates a new PermissionError for the named capability.
func NewPermissionError(capability string, cause error) *PermissionError {
	return &PermissionError{
		baseError: baseError{
			message:    "access refused",
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Capability: capability,
	}
}

// WithMessage replaces the default message.
func (e *PermissionError) WithMessage(msg string) *PermissionError {
	e.message = msg
	return e
}

// Error returns the formatted error message.
func (e *PermissionError) Error() string {
	var parts []string
	if e.Capability != "" {
		parts = append(parts, "capability="+e.Capability)
	}
	return e.format("permission error", parts)
}

// Is checks if this error matches the target.
func (e *PermissionError) Is(target error) bool {
	_, ok := target.(*PermissionError)
	return ok
}

// PreconditionError represents an action attempted before its prerequisite.
// No state changes when one is returned.
//
// Example:
//
//	err := errors.NewPreconditionError("report_location", errors.ErrNoPin)
type PreconditionError struct {
	baseError
	Action string
}

// NewPreconditionError creates a new PreconditionError for the named action.
func NewPreconditionError(action string, cause error) *PreconditionError {
	return &PreconditionError{
		baseError: baseError{
			message:    "precondition not met",
			cause:      cause,
			severity:   SeverityInfo,
			userFacing: true,
		},
		Action: action,
	}
}

// Error returns the formatted error message.
func (e *PreconditionError) Error() string {
	var parts []string
	if e.Action != "" {
		parts = append(parts, "action="+e.Action)
	}
	return e.format("precondition error", parts)
}

// Is checks if this error matches the target.
func (e *PreconditionError) Is(target error) bool {
	_, ok := target.(*PreconditionError)
	return ok
}

// ConfigError represents a missing or unusable configuration value.
//
// Example:
//
//	err := errors.NewConfigError("maps.api_key", errors.ErrMissingCredential)
type ConfigError struct {
	baseError
	Key string
}

// NewConfigError creates a new ConfigError for the given config key.
func NewConfigError(key string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    "configuration problem",
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Key: key,
	}
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Key != "" {
		parts = append(parts, "key="+e.Key)
	}
	return e.format("config error", parts)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// LookupError reports a view identifier with no registered container.
// It signals a programming-time invariant violation, not a user mistake.
//
// Example:
//
//	err := errors.NewLookupError("view", "settings").WithSuggestion("reports")
//	fmt.Println(err) // "view 'settings' not found (did you mean 'reports'?)"
type LookupError struct {
	baseError
	Kind       string
	Name       string
	Suggestion string
}

// NewLookupError creates a new LookupError.
func NewLookupError(kind, name string) *LookupError {
	return &LookupError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", kind, name),
			cause:      ErrViewNotFound,
			severity:   SeverityCritical,
			userFacing: false,
		},
		Kind: kind,
		Name: name,
	}
}

// WithSuggestion records the closest known name.
func (e *LookupError) WithSuggestion(s string) *LookupError {
	e.Suggestion = s
	return e
}

// Error returns the formatted error message.
func (e *LookupError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean '%s'?)", e.message, e.Suggestion)
	}
	return e.message
}

// Is checks if this error matches the target.
func (e *LookupError) Is(target error) bool {
	if _, ok := target.(*LookupError); ok {
		return true
	}
	return target == ErrViewNotFound
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid user input.
//
// Example:
//
//	err := errors.NewValidationError("username", "must not be empty")
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			cause:      ErrInvalidInput,
			severity:   SeverityInfo,
			userFacing: true,
		},
		Field: field,
	}
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.message)
	}
	return "invalid input: " + e.message
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing reports whether any AppError in the chain is user facing.
func IsUserFacing(err error) bool {
	var ae AppError
	if As(err, &ae) {
		return ae.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity of the first AppError in the chain,
// or SeverityError for plain errors.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var ae AppError
	if As(err, &ae) {
		return ae.Severity()
	}
	return SeverityError
}

// Wrap annotates err with a message, preserving the chain.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

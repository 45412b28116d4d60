// Package errors provides structured error types for prefedit.
// These errors include codes, messages, and user-friendly suggestions to improve
// the user experience when errors occur.
package errors

import (
	"fmt"
	"strings"
)

// AppError represents a structured application error with additional context.
// It implements the error interface and supports error wrapping and comparison.
type AppError struct {
	// Code is a unique identifier for the error type (e.g., "FMT_001")
	Code string

	// Message is a brief description of the error
	Message string

	// Suggestion provides actionable guidance for the user
	Suggestion string

	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface and returns a formatted error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Code != "" {
		sb.WriteString(" (code: ")
		sb.WriteString(e.Code)
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause of the error, enabling error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error type.
// This enables errors.Is() comparisons for AppError types.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	// Match by code if both have codes
	if e.Code != "" && t.Code != "" {
		return e.Code == t.Code
	}
	// Otherwise match by message
	return e.Message == t.Message
}

// FormatForTUI returns a formatted string suitable for display in the TUI.
// The output includes the error message, suggestion, and code in a user-friendly format.
func (e *AppError) FormatForTUI() string {
	var sb strings.Builder

	sb.WriteString("⚠ ")
	sb.WriteString(e.Message)
	sb.WriteString("\n\n")

	if e.Suggestion != "" {
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n\n")
	}

	if e.Code != "" {
		sb.WriteString("Error Code: ")
		sb.WriteString(e.Code)
	}

	return sb.String()
}

// --- Sentinel Errors ---

var (
	// ErrFormat indicates malformed canonical text, such as a stored time
	// that cannot be parsed.
	ErrFormat = &AppError{
		Code:       "FMT_001",
		Message:    "Value is not in the expected format",
		Suggestion: "Times are written as H:MM (e.g. 8:05) and time ranges as H:MM-H:MM (e.g. 22:00-6:30).",
	}

	// ErrInvalidArgument indicates a value outside its allowed range.
	ErrInvalidArgument = &AppError{
		Code:       "ARG_001",
		Message:    "Value is out of range",
		Suggestion: "Check the allowed bounds for this setting and try again.",
	}

	// ErrStaleSession indicates an editing result arrived for a session that
	// no longer exists.
	ErrStaleSession = &AppError{
		Code:       "SES_001",
		Message:    "Editing session is no longer active",
		Suggestion: "Open the setting again to start a new edit.",
	}

	// ErrStoreWrite indicates the preference store rejected a write.
	ErrStoreWrite = &AppError{
		Code:       "STORE_001",
		Message:    "Failed to save setting",
		Suggestion: "Check that the data directory is writable and has free space.",
	}

	// ErrStoreLocked indicates another process holds the preference store.
	ErrStoreLocked = &AppError{
		Code:       "STORE_002",
		Message:    "Preference store is locked",
		Suggestion: "Is prefedit already running? Only one instance can open the store at a time.",
	}

	// ErrConfigInvalid indicates a configuration validation error.
	ErrConfigInvalid = &AppError{
		Code:       "CFG_001",
		Message:    "Configuration is invalid",
		Suggestion: "Check your configuration file for errors, or remove it to restore the defaults.",
	}

	// ErrSchemaInvalid indicates the preference schema failed validation.
	ErrSchemaInvalid = &AppError{
		Code:       "SCHEMA_001",
		Message:    "Preference schema is invalid",
		Suggestion: "Fix the schema file, or unset schema.path to use the built-in schema.",
	}

	// ErrUnknownKey indicates a preference key that the schema does not define.
	ErrUnknownKey = &AppError{
		Code:       "KEY_001",
		Message:    "Unknown preference key",
		Suggestion: "Run 'prefedit list' to see the available keys.",
	}
)

// --- Constructor Functions ---

// NewFormatError creates a new ErrFormat error for the given input text.
func NewFormatError(text string, reason string) *AppError {
	return &AppError{
		Code:       ErrFormat.Code,
		Message:    fmt.Sprintf("Cannot parse %q: %s", text, reason),
		Suggestion: ErrFormat.Suggestion,
	}
}

// NewInvalidArgumentError creates a new ErrInvalidArgument error naming the
// offending field and value.
func NewInvalidArgumentError(field string, value any, reason string) *AppError {
	return &AppError{
		Code:       ErrInvalidArgument.Code,
		Message:    fmt.Sprintf("Invalid %s %v: %s", field, value, reason),
		Suggestion: ErrInvalidArgument.Suggestion,
	}
}

// NewStaleSessionError creates a new ErrStaleSession error for a result token.
func NewStaleSessionError(key string, token int) *AppError {
	return &AppError{
		Code:       ErrStaleSession.Code,
		Message:    fmt.Sprintf("No editing session for %q (token %d)", key, token),
		Suggestion: ErrStaleSession.Suggestion,
	}
}

// NewStoreWriteError creates a new ErrStoreWrite error with the key that
// could not be written.
func NewStoreWriteError(key string, cause error) *AppError {
	return &AppError{
		Code:       ErrStoreWrite.Code,
		Message:    fmt.Sprintf("Failed to save %q", key),
		Suggestion: ErrStoreWrite.Suggestion,
		Cause:      cause,
	}
}

// NewStoreLockedError creates a new ErrStoreLocked error for the store path.
func NewStoreLockedError(path string, cause error) *AppError {
	return &AppError{
		Code:       ErrStoreLocked.Code,
		Message:    fmt.Sprintf("Preference store %s is locked", path),
		Suggestion: ErrStoreLocked.Suggestion,
		Cause:      cause,
	}
}

// NewConfigInvalidError creates a new ErrConfigInvalid error with validation details.
func NewConfigInvalidError(details string, cause error) *AppError {
	return &AppError{
		Code:       ErrConfigInvalid.Code,
		Message:    fmt.Sprintf("Configuration is invalid: %s", details),
		Suggestion: ErrConfigInvalid.Suggestion,
		Cause:      cause,
	}
}

// NewSchemaInvalidError creates a new ErrSchemaInvalid error with validation details.
func NewSchemaInvalidError(details string, cause error) *AppError {
	return &AppError{
		Code:       ErrSchemaInvalid.Code,
		Message:    fmt.Sprintf("Preference schema is invalid: %s", details),
		Suggestion: ErrSchemaInvalid.Suggestion,
		Cause:      cause,
	}
}

// NewUnknownKeyError creates a new ErrUnknownKey error for key.
func NewUnknownKeyError(key string) *AppError {
	return &AppError{
		Code:       ErrUnknownKey.Code,
		Message:    fmt.Sprintf("Unknown preference key %q", key),
		Suggestion: ErrUnknownKey.Suggestion,
	}
}

// --- Helper Functions ---

// GetAppError attempts to extract an AppError from an error.
// Returns the AppError if found, or nil otherwise.
func GetAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// Wrap wraps an existing error with additional context.
// If the error is already an AppError, it returns a new AppError with the same code
// but with the additional message context.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:       appErr.Code,
			Message:    message + ": " + appErr.Message,
			Suggestion: appErr.Suggestion,
			Cause:      appErr.Cause,
		}
	}

	return &AppError{
		Code:       "GEN_001",
		Message:    message,
		Suggestion: "Check the error details and try again.",
		Cause:      err,
	}
}

// FormatErrorForTUI formats any error for display in the TUI.
// If the error is an AppError, it uses FormatForTUI(). Otherwise, it provides
// a generic formatted output.
func FormatErrorForTUI(err error) string {
	if err == nil {
		return ""
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr.FormatForTUI()
	}

	// Generic error formatting
	return fmt.Sprintf("⚠ %s\n\nAn unexpected error occurred. Check the logs for more details.", err.Error())
}

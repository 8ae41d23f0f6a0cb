// Package apperr defines the typed errors every operation reports to callers
// and the uniform failure envelope they are converted to at the protocol
// boundary.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ToolUnavailable   Code = "TOOL_UNAVAILABLE"
	CommandFailed     Code = "COMMAND_FAILED"
	InvalidParameters Code = "INVALID_PARAMETERS"
	WindowNotFound    Code = "WINDOW_NOT_FOUND"
	WorkspaceNotFound Code = "WORKSPACE_NOT_FOUND"
	DisplayNotFound   Code = "DISPLAY_NOT_FOUND"
	NoWindowFocused   Code = "NO_WINDOW_FOCUSED"
	PresetNotFound    Code = "PRESET_NOT_FOUND"
	DisplayMismatch   Code = "DISPLAY_MISMATCH"
	CaptureFailed     Code = "CAPTURE_FAILED"
	UnknownError      Code = "UNKNOWN_ERROR"
)

// Details carries structured diagnostics so a caller can self-correct
// without re-querying.
type Details map[string]any

// Error is a classified error.
type Error struct {
	Code    Code
	Message string
	Details Details
	Err     error // optional underlying cause
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error. A nil details map is replaced with an empty one.
func New(code Code, message string, details Details) *Error {
	if details == nil {
		details = Details{}
	}
	return &Error{Code: code, Message: message, Details: details}
}

// Wrap is like New but records cause as the underlying error.
func Wrap(cause error, code Code, message string, details Details) *Error {
	e := New(code, message, details)
	e.Err = cause
	return e
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// From classifies any error. Unclassified errors become UNKNOWN_ERROR.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, UnknownError, err.Error(), nil)
}

// Invalid reports a parameter value outside its allowed set.
func Invalid(param, provided string, valid []string) *Error {
	opts := sortedCopy(valid)
	return New(InvalidParameters,
		fmt.Sprintf("Invalid %s '%s'. Must be one of: %s", param, provided, strings.Join(opts, ", ")),
		Details{"parameter": param, "provided": provided, "valid_options": opts})
}

// Invalidf reports misuse of parameters that is not a single bad enum value,
// such as mutually exclusive parameters.
func Invalidf(details Details, format string, args ...any) *Error {
	return New(InvalidParameters, fmt.Sprintf(format, args...), details)
}

// WindowMissing reports an explicit window ID that does not resolve.
func WindowMissing(id int, available []int) *Error {
	if available == nil {
		available = []int{}
	}
	return New(WindowNotFound,
		fmt.Sprintf("Window with ID %d not found", id),
		Details{"requested_window_id": id, "available_windows": available})
}

// WorkspaceMissing reports an unknown workspace name.
func WorkspaceMissing(name string, available []string) *Error {
	if available == nil {
		available = []string{}
	}
	return New(WorkspaceNotFound,
		fmt.Sprintf("Workspace '%s' not found", name),
		Details{"requested_workspace": name, "available_workspaces": available})
}

// NoFocus reports that an operation needed a focused window and there is none.
func NoFocus() *Error {
	return New(NoWindowFocused, "No window is currently focused",
		Details{"suggestion": "Focus a window first"})
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

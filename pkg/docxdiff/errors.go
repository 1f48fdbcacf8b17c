// Package docxdiff provides custom error types for better error handling and reporting.
package docxdiff

import (
	"fmt"
	"sync"
)

// ArchiveError represents a fatal problem with a compressed input package:
// a corrupt container, or a configured resource limit exceeded.
type ArchiveError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ArchiveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("archive error during %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("archive error during %s: %s", e.Operation, e.Message)
}

func (e *ArchiveError) Unwrap() error {
	return e.Cause
}

// NewArchiveError creates a new archive error
func NewArchiveError(operation, message string, cause error) error {
	return &ArchiveError{
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// MissingPartError represents an input package that lacks the primary
// document part.
type MissingPartError struct {
	Part string
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("missing required part '%s'", e.Part)
}

// NewMissingPartError creates a new missing part error
func NewMissingPartError(part string) error {
	return &MissingPartError{Part: part}
}

// PolicyViolationError represents an opt-in fatal condition requested
// through Options, such as refusing input that already carries tracked
// changes.
type PolicyViolationError struct {
	Policy  string
	Message string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("policy '%s' violated: %s", e.Policy, e.Message)
}

// NewPolicyViolationError creates a new policy violation error
func NewPolicyViolationError(policy, message string) error {
	return &PolicyViolationError{Policy: policy, Message: message}
}

// PartParseError represents a part whose text could not be parsed as
// well-formed markup. For the document part this is recoverable: the
// engine substitutes an empty tree and records a warning.
type PartParseError struct {
	Message string
	Cause   error
}

func (e *PartParseError) Error() string {
	if e.Message != "" && e.Cause != nil {
		return fmt.Sprintf("part parse error: %s: %v", e.Message, e.Cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("part parse error: %s", e.Message)
	}
	return fmt.Sprintf("part parse error: %v", e.Cause)
}

func (e *PartParseError) Unwrap() error {
	return e.Cause
}

// NewParsePartError creates a new part parse error
func NewParsePartError(message string, cause error) error {
	return &PartParseError{Message: message, Cause: cause}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// IsArchiveError checks if an error is an archive error
func IsArchiveError(err error) bool {
	_, ok := err.(*ArchiveError)
	return ok
}

// IsMissingPartError checks if an error is a missing part error
func IsMissingPartError(err error) bool {
	_, ok := err.(*MissingPartError)
	return ok
}

// IsPolicyViolationError checks if an error is a policy violation error
func IsPolicyViolationError(err error) bool {
	_, ok := err.(*PolicyViolationError)
	return ok
}

// IsPartParseError checks if an error is a part parse error
func IsPartParseError(err error) bool {
	_, ok := err.(*PartParseError)
	return ok
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	_, ok := err.(*DocumentError)
	return ok
}

// warningCollector accumulates non-fatal conditions surfaced alongside a
// best-effort result. Safe for use from the concurrent input loaders.
type warningCollector struct {
	mu      sync.Mutex
	entries []string
}

// Addf records a warning (ignores empty messages)
func (w *warningCollector) Addf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		return
	}
	w.mu.Lock()
	w.entries = append(w.entries, msg)
	w.mu.Unlock()
}

// List returns the accumulated warnings in recording order
func (w *warningCollector) List() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}

// Len returns the number of warnings
func (w *warningCollector) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

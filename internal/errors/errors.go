package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/daycheck/internal/logger"
)

// ErrNotLoaded is returned by repositories used before Init or Load
var ErrNotLoaded = stderrors.New("storage not loaded")

// ValidationError reports a raw answer or question definition that failed a
// type or bounds check. Nothing is written when it is returned.
type ValidationError struct {
	QuestionID string
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	switch {
	case e.QuestionID != "" && e.Field != "":
		return fmt.Sprintf("invalid %s for question %s: %s", e.Field, e.QuestionID, e.Reason)
	case e.QuestionID != "":
		return fmt.Sprintf("invalid answer for question %s: %s", e.QuestionID, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	default:
		return "validation failed: " + e.Reason
	}
}

// NewValidationError builds a ValidationError for an answer to questionID
func NewValidationError(questionID, format string, args ...interface{}) *ValidationError {
	return &ValidationError{QuestionID: questionID, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference (usually a question id) with no definition
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

package errors

import (
	"errors"
	"fmt"
)

// Setup errors abort a scoring run before any output is written

var (
	// ErrInputNotFound indicates the raw transaction file is missing
	ErrInputNotFound = errors.New("input data not found")

	// ErrFeatureListMissing indicates features.json is missing or unreadable
	ErrFeatureListMissing = errors.New("feature list artifact missing")

	// ErrModelLoad indicates the serialized model could not be loaded
	ErrModelLoad = errors.New("model load failed")

	// ErrEmptyFrame indicates the input frame has no rows to score
	ErrEmptyFrame = errors.New("empty input frame")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")
)

// Artifact errors

var (
	// ErrArtifactMalformed indicates an artifact file could not be decoded
	ErrArtifactMalformed = errors.New("artifact malformed")
)

// Model errors

var (
	// ErrUnknownModelFormat indicates the model file format is not supported
	ErrUnknownModelFormat = errors.New("unknown model format")

	// ErrNoEstimator indicates a pipeline model has no terminal estimator
	ErrNoEstimator = errors.New("pipeline has no terminal estimator")

	// ErrImportancesUnavailable indicates the model exposes no importances
	ErrImportancesUnavailable = errors.New("feature importances unavailable")
)

// DomainError wraps an error with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

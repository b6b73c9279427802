package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	// Caller-side problems; retrying with the same input fails again
	ErrorCategoryInput         ErrorCategory = "INPUT"
	ErrorCategoryValidation    ErrorCategory = "VALIDATION"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Collaborator failures around the indicator core
	ErrorCategoryExchange ErrorCategory = "EXCHANGE"
	ErrorCategoryStorage  ErrorCategory = "STORAGE"
	ErrorCategoryReport   ErrorCategory = "REPORT"

	ErrorCategoryUnknown ErrorCategory = "UNKNOWN"
)

// AnalysisError represents a categorized error with context
type AnalysisError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AnalysisError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether this error can be retried
func (e *AnalysisError) IsRetryable() bool {
	return e.Category == ErrorCategoryExchange || e.Category == ErrorCategoryStorage
}

// NewAnalysisError creates a new categorized error
func NewAnalysisError(category ErrorCategory, component, operation, message string) *AnalysisError {
	return &AnalysisError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with analysis error context
func WrapError(err error, category ErrorCategory, component, operation string) *AnalysisError {
	if err == nil {
		return nil
	}

	return &AnalysisError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *AnalysisError) WithContext(key string, value interface{}) *AnalysisError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// CategoryOf returns the category of the first AnalysisError in err's chain
func CategoryOf(err error) ErrorCategory {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ErrorCategoryUnknown
}

// Common error constructors
func NewInputError(component, operation string, err error) *AnalysisError {
	return WrapError(err, ErrorCategoryInput, component, operation)
}

func NewValidationError(component, operation, message string) *AnalysisError {
	return NewAnalysisError(ErrorCategoryValidation, component, operation, message)
}

func NewConfigurationError(component, operation, message string) *AnalysisError {
	return NewAnalysisError(ErrorCategoryConfiguration, component, operation, message)
}

func NewExchangeError(component, operation string, err error) *AnalysisError {
	return WrapError(err, ErrorCategoryExchange, component, operation)
}

func NewStorageError(component, operation string, err error) *AnalysisError {
	return WrapError(err, ErrorCategoryStorage, component, operation)
}

func NewReportError(component, operation string, err error) *AnalysisError {
	return WrapError(err, ErrorCategoryReport, component, operation)
}

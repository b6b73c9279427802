package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisError_ErrorFormat(t *testing.T) {
	err := NewConfigurationError("indicators", "validate", "sma period must be positive")
	assert.Equal(t, "[CONFIG:indicators] validate: sma period must be positive", err.Error())

	wrapped := WrapError(fmt.Errorf("disk full"), ErrorCategoryStorage, "state", "save")
	assert.Contains(t, wrapped.Error(), "disk full")
	assert.Contains(t, wrapped.Error(), "[STORAGE:state]")
}

func TestWrapError_Nil(t *testing.T) {
	assert.Nil(t, WrapError(nil, ErrorCategoryInput, "data", "load"))
}

func TestAnalysisError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := NewInputError("data", "parse", sentinel)

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, ErrorCategoryInput, CategoryOf(fmt.Errorf("outer: %w", err)))
}

func TestCategoryOf_Unknown(t *testing.T) {
	assert.Equal(t, ErrorCategoryUnknown, CategoryOf(errors.New("plain")))
	assert.Equal(t, ErrorCategoryUnknown, CategoryOf(nil))
}

func TestAnalysisError_Retryable(t *testing.T) {
	assert.True(t, NewExchangeError("bybit", "klines", errors.New("timeout")).IsRetryable())
	assert.False(t, NewValidationError("data", "parse", "bad").IsRetryable())
}

func TestAnalysisError_WithContext(t *testing.T) {
	err := NewValidationError("data", "parse", "bad row").WithContext("line", 3)
	assert.Equal(t, 3, err.Context["line"])
}

package config

import (
	"errors"
	"fmt"

	"github.com/dshills/driftwm/internal/config/loader"
)

var (
	// ErrTypeMismatch indicates a setting of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates a setting outside its allowed values.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoActions indicates a binding whose action list is empty after
	// invalid actions were dropped.
	ErrNoActions = errors.New("no valid actions")
)

// ParseError reports an unparsable configuration file.
type ParseError = loader.ParseError

// ValidationError describes a rejected setting. The setting keeps its
// default.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	if e.Code == ErrCodeUnknownSetting {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrValidationFailed, and ErrTypeMismatch for type errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed ||
		(target == ErrTypeMismatch && e.Code == ErrCodeTypeMismatch)
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	ErrCodeUnknownSetting ValidationErrorCode = iota
	ErrCodeTypeMismatch
	ErrCodeOutOfRange
	ErrCodeInvalidEnum
	ErrCodeRequiredMissing
)

// String returns a short name for the code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeUnknownSetting:
		return "unknown_setting"
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeRequiredMissing:
		return "required_missing"
	default:
		return "unknown"
	}
}

// BindingError reports a dropped or trimmed keybind, mousebind, menu or
// region entry. Index is the entry's position in its array.
type BindingError struct {
	Kind  string
	Index int
	Err   error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Kind, e.Index, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

package assessment

import (
	"errors"
	"fmt"
)

// Sentinel kinds matched with errors.Is
var (
	ErrValidation    = errors.New("invalid input")
	ErrRange         = errors.New("value out of range")
	ErrConfiguration = errors.New("unknown identifier")
)

// ValidationError reports a missing, unknown or malformed input field.
// Records that fail validation must not be persisted.
type ValidationError struct {
	Instrument Instrument
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.Instrument == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Instrument, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// RangeError reports a response outside the declared scale of its item.
// It matches both ErrRange and ErrValidation.
type RangeError struct {
	Instrument Instrument
	Field      string
	Value      float64
	Min        float64
	Max        float64
}

func (e *RangeError) Error() string {
	prefix := ""
	if e.Instrument != "" {
		prefix = string(e.Instrument) + ": "
	}
	return fmt.Sprintf("%s%s = %g outside allowed range %g-%g", prefix, e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() []error { return []error{ErrRange, ErrValidation} }

// ConfigurationError reports an identifier the engine does not know about,
// which points at an integration bug rather than bad data
type ConfigurationError struct {
	Kind string
	ID   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

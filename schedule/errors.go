/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match with errors.Is and unwrap the structured variants for
  detail.

ERROR CATEGORIES:
  1. Break errors - Carried break times the rhythm cannot continue from
  2. Shift errors - Malformed shift boundaries
  3. Rate errors  - Malformed rate configuration

SEE ALSO:
  - breaks.go: Returns break errors
  - shift/shift.go: Returns shift errors
  - factory/rates.go: Wraps rate errors with parse context
*/
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidBreakTime is returned when a carried break time is too late
	// in the previous day for the work/rest rhythm to continue from it.
	ErrInvalidBreakTime = errors.New("invalid carried break time")

	// ErrInvalidShiftBounds is returned when a shift ends before it starts.
	ErrInvalidShiftBounds = errors.New("invalid shift: end before start")

	// ErrMalformedRateConfig is returned when a rate configuration cannot
	// be assembled into a usable rate table.
	ErrMalformedRateConfig = errors.New("malformed rate configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidBreakTimeError reports a carried break the rhythm cannot resume
// from, with the rhythm's earliest acceptable value.
type InvalidBreakTimeError struct {
	LastBreak Clock
	Earliest  Clock
}

func (e *InvalidBreakTimeError) Error() string {
	return fmt.Sprintf("invalid carried break time %s: must be at or after %s",
		e.LastBreak, e.Earliest)
}

func (e *InvalidBreakTimeError) Unwrap() error {
	return ErrInvalidBreakTime
}

// InvalidShiftError reports shift boundaries in the wrong order.
type InvalidShiftError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("invalid shift: end %s before start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

func (e *InvalidShiftError) Unwrap() error {
	return ErrInvalidShiftBounds
}

// RateConfigError reports a specific field of a rate configuration that
// failed validation.
type RateConfigError struct {
	Field  string
	Reason string
}

func (e *RateConfigError) Error() string {
	return fmt.Sprintf("malformed rate configuration: %s: %s", e.Field, e.Reason)
}

func (e *RateConfigError) Unwrap() error {
	return ErrMalformedRateConfig
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidBreakTime) ||
		errors.Is(err, ErrInvalidShiftBounds) ||
		errors.Is(err, ErrMalformedRateConfig)
}

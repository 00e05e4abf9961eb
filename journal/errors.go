/*
errors.go - Centralized error types for the journal rule engine

PURPOSE:
  All domain error types in one place. The ingestion and API layers wrap or
  map these; detectors themselves only ever produce them.

ERROR CATEGORIES:
  1. Configuration errors - rule file missing or unparseable (fatal, 5xx)
  2. Data-format errors   - a column value cannot be coerced (fatal, 4xx)
  3. Mode errors          - an unknown report mode was requested (fatal, 4xx)

  A detector finding zero flagged rows is NOT an error: it is a valid
  terminal state reported with a zero count. Reversal gaps (a reversal whose
  target is absent) are also not errors; Reconcile returns them as data.

USAGE:
  Callers branch with errors.Is/errors.As:

    if errors.Is(err, journal.ErrRuleConfig) { ... 500 ... }
    var ffe *journal.FieldFormatError
    if errors.As(err, &ffe) { ... 400 naming ffe.Column ... }
*/
package journal

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRuleConfig is returned when the VIP code rule file is missing,
	// unreadable, or structurally invalid. Fatal for the run; the rule file
	// is assumed static per deployment, so there is no retry.
	ErrRuleConfig = errors.New("invalid rule configuration")

	// ErrDataFormat is returned when a required column value cannot be
	// coerced to its expected type. Fatal for the run: code identity drives
	// every downstream decision, so rows are never silently skipped.
	ErrDataFormat = errors.New("invalid data format")

	// ErrUnknownMode is returned when a report mode switch receives a value
	// it does not recognize. There is no silent default.
	ErrUnknownMode = errors.New("unknown report mode")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RuleConfigError reports why a rule configuration could not be loaded.
type RuleConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *RuleConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rule configuration %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("rule configuration %q: %s", e.Path, e.Reason)
}

func (e *RuleConfigError) Unwrap() error { return ErrRuleConfig }

// FieldFormatError names the column and offending value that could not be
// coerced, so the caller receives a usable diagnostic.
type FieldFormatError struct {
	Row    int // 1-based data row number (header excluded)
	Column string
	Value  string
	Want   string // expected type, e.g. "integer", "decimal", "date"
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot parse %q as %s",
		e.Row, e.Column, e.Value, e.Want)
}

func (e *FieldFormatError) Unwrap() error { return ErrDataFormat }

// UnknownModeError reports the rejected mode value.
type UnknownModeError struct {
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("exemption mode must be %q or %q, got %q",
		ModeWeek, ModeMonth, e.Value)
}

func (e *UnknownModeError) Unwrap() error { return ErrUnknownMode }

/*
Package journal contains the payroll rule engine that runs over uploaded
hours-journal and clock exports.

PURPOSE:
  This package holds the typed domain records and the business rules applied
  to them: reversal reconciliation, VIP-code validation against a day-type
  rule table, overbooking and duplicate-overtime detection, statutory
  exemption aggregation, attendance summaries, and the productivity report.

KEY CONCEPTS IN THIS FILE (types.go):
  - TimeEntry: One row of the hours journal (typed, validated at ingestion)
  - ClockEvent: One clock-machine scan from an attendance export
  - OriginatorCount: Per-user accountability rollup used by several reports

DESIGN PRINCIPLES:
  1. Typed records: Column lookups by string key stop at the ingest boundary;
     everything in this package operates on named, typed fields.
  2. Precision: Hours use decimal.Decimal, never float64.
  3. Immutability: Every transformation takes a slice and returns a new one.
     No function in this package mutates caller-owned data.

SEE ALSO:
  - reconcile.go: Reversal reconciliation (runs before every rule)
  - rules.go:     Day-type classification and the VIP code rule table
  - calendar.go:  Weekday and public-holiday oracle
*/
package journal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIME ENTRY - One row of the hours journal
// =============================================================================

// TimeEntry is a single posted hours-journal row.
//
// A reversal row carries negative HoursWorked and a non-nil AppliesTo
// referencing the EntryNo it cancels. Reversals never reach the rule
// engine; Reconcile removes them together with their targets.
type TimeEntry struct {
	EntryNo     int64
	ResourceNo  string
	WorkDate    time.Time // date only, normalized to UTC midnight
	Code        int       // VIP code
	HoursWorked decimal.Decimal
	AppliesTo   *int64 // entry no this row reverses; nil on normal rows
	Originator  string // user who posted the entry
}

// IsReversal reports whether the entry is a reversal row.
func (e TimeEntry) IsReversal() bool {
	return e.HoursWorked.IsNegative() && e.AppliesTo != nil
}

// =============================================================================
// CLOCK EVENT - One scan from a clock-machine attendance export
// =============================================================================

// ClockEvent is a single clock-machine scan. ClockNo identifies the
// employee, Site is the WTT site code the machine belongs to.
type ClockEvent struct {
	ClockNo string
	Date    time.Time // date only
	Site    string    // WTT column
	MeterID string
}

// =============================================================================
// ORIGINATOR ROLLUP
// =============================================================================

// OriginatorCount is the per-user count used by accountability summaries.
type OriginatorCount struct {
	Originator string
	Count      int
}

// CountOriginators rolls up a list of originator ids into per-user counts,
// sorted by count descending, then originator ascending for stable output.
func CountOriginators(originators []string) []OriginatorCount {
	counts := make(map[string]int)
	for _, o := range originators {
		counts[o]++
	}

	out := make([]OriginatorCount, 0, len(counts))
	for o, n := range counts {
		out = append(out, OriginatorCount{Originator: o, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Originator < out[j].Originator
	})
	return out
}

// =============================================================================
// DATE HELPERS
// =============================================================================

// DateOnly strips the time-of-day component. Every WorkDate and ClockEvent
// date in this package is expected to already be in this form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

/*
vip.go - VIP code validator

PURPOSE:
  Flags hours-journal rows whose VIP code is not valid for the day type of
  their work date. Stateless per-row classification; the decision table
  lives in rules.go.

OUTPUT:
  Incorrect rows annotated with a human-readable day-type label. A holiday
  override is always shown as "Holiday" regardless of the underlying
  weekday. A companion rollup counts incorrect entries per originator,
  descending, for accountability reporting.
*/
package journal

// IncorrectEntry is a journal row that failed VIP validation, annotated
// with the day type it was evaluated under.
type IncorrectEntry struct {
	TimeEntry
	DayType DayType
}

// VIPValidator applies the rule table to reconciled entries.
type VIPValidator struct {
	rules *RuleSet
	cal   *Calendar
}

// NewVIPValidator builds a validator around an immutable rule set and a
// shared calendar.
func NewVIPValidator(rules *RuleSet, cal *Calendar) *VIPValidator {
	return &VIPValidator{rules: rules, cal: cal}
}

// FindIncorrect returns the rows whose code is not in the allowed set of
// their day type, in input order.
func (v *VIPValidator) FindIncorrect(entries []TimeEntry) []IncorrectEntry {
	var incorrect []IncorrectEntry
	for _, e := range entries {
		dt := ClassifyDay(v.cal, e.WorkDate)
		if !v.rules.Allows(dt, e.Code) {
			incorrect = append(incorrect, IncorrectEntry{TimeEntry: e, DayType: dt})
		}
	}
	return incorrect
}

// SummarizeByOriginator counts incorrect entries per posting user,
// descending by count.
func SummarizeByOriginator(incorrect []IncorrectEntry) []OriginatorCount {
	names := make([]string, len(incorrect))
	for i, e := range incorrect {
		names[i] = e.Originator
	}
	return CountOriginators(names)
}

/*
rules.go - Day-type classification and the VIP code rule table

PURPOSE:
  A configuration-driven mapping from (day type, VIP code) to valid/invalid.
  The rule document partitions all codes into named buckets; the allowed set
  for a day type is the union of its buckets plus the universal driver
  bucket.

DAY TYPE PRECEDENCE (first match wins):
  1. Sunday
  2. Holiday   (a holiday on Saturday or a weekday is classified Holiday)
  3. Saturday
  4. Weekday   (Mon-Fri)

  A Sunday holiday is evaluated under Sunday rules, not holiday rules.

RULE DOCUMENT:
  JSON with an "hour_codes" object:

    {
      "hour_codes": {
        "mon_fri_normal":    [100, 110],
        "mon_fri_overtime":  [200],
        "saturday_overtime": [300],
        "sunday_overtime":   [400],
        "holiday_normal":    [500],
        "holiday_overtime":  [600],
        "driver":            [700]
      }
    }

LIFECYCLE:
  Loaded once per validation run, immutable afterwards. Missing file, bad
  JSON, or a missing bucket is a RuleConfigError (fatal, no retry).
*/
package journal

import (
	"encoding/json"
	"os"
	"time"
)

// =============================================================================
// DAY TYPE
// =============================================================================

// DayType is the calendar classification of a work date.
type DayType string

const (
	DayWeekday  DayType = "Weekday"
	DaySaturday DayType = "Saturday"
	DaySunday   DayType = "Sunday"
	DayHoliday  DayType = "Holiday"
)

// ClassifyDay determines the day type of a date. Precedence:
// Sunday > Holiday > Saturday > Weekday.
func ClassifyDay(cal *Calendar, date time.Time) DayType {
	switch {
	case Weekday(date) == 6:
		return DaySunday
	case cal.IsHoliday(date):
		return DayHoliday
	case Weekday(date) == 5:
		return DaySaturday
	default:
		return DayWeekday
	}
}

// =============================================================================
// RULE SET
// =============================================================================

// Bucket names expected under "hour_codes".
var ruleBuckets = []string{
	"mon_fri_normal",
	"mon_fri_overtime",
	"saturday_overtime",
	"sunday_overtime",
	"holiday_normal",
	"holiday_overtime",
	"driver",
}

// RuleSet holds the allowed VIP code set per day type. Immutable once built.
type RuleSet struct {
	allowed map[DayType]map[int]struct{}
}

type ruleDocument struct {
	HourCodes map[string][]int `json:"hour_codes"`
}

// LoadRuleSet reads and parses a rule document from disk. This is the only
// I/O inside the rule engine: a one-time blocking load at validator
// construction, with no retry.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RuleConfigError{Path: path, Reason: "read failed", Err: err}
	}
	rs, err := ParseRuleSet(data)
	if err != nil {
		if rce, ok := err.(*RuleConfigError); ok {
			rce.Path = path
		}
		return nil, err
	}
	return rs, nil
}

// ParseRuleSet builds a RuleSet from a JSON rule document.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var doc ruleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &RuleConfigError{Reason: "malformed JSON", Err: err}
	}
	if doc.HourCodes == nil {
		return nil, &RuleConfigError{Reason: `missing "hour_codes" object`}
	}

	buckets := make(map[string]map[int]struct{}, len(ruleBuckets))
	for _, name := range ruleBuckets {
		codes, ok := doc.HourCodes[name]
		if !ok {
			return nil, &RuleConfigError{Reason: `missing bucket "` + name + `"`}
		}
		set := make(map[int]struct{}, len(codes))
		for _, c := range codes {
			set[c] = struct{}{}
		}
		buckets[name] = set
	}

	union := func(names ...string) map[int]struct{} {
		out := make(map[int]struct{})
		for _, n := range names {
			for c := range buckets[n] {
				out[c] = struct{}{}
			}
		}
		return out
	}

	return &RuleSet{
		allowed: map[DayType]map[int]struct{}{
			DayWeekday:  union("mon_fri_normal", "mon_fri_overtime", "driver"),
			DaySaturday: union("saturday_overtime", "driver"),
			DaySunday:   union("sunday_overtime", "driver"),
			DayHoliday:  union("holiday_normal", "holiday_overtime", "driver"),
		},
	}, nil
}

// Allows reports whether code is valid on the given day type.
func (rs *RuleSet) Allows(dt DayType, code int) bool {
	_, ok := rs.allowed[dt][code]
	return ok
}

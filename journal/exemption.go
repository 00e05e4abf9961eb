/*
exemption.go - Statutory-hour exemption aggregation

PURPOSE:
  Rolls up worked hours per employee per week or month and flags statutory
  excesses over the 72-hour weekly threshold.

WEEK BUCKETS:
  Weeks run Sunday through Saturday. The week start is the work date minus
  (weekday_mon0 + 1) mod 7 days, which shifts the Monday=0 numbering into a
  Sunday-anchored week.

MONTHLY MODE:
  Derived from the weekly result: weekly excess rows are grouped by the
  calendar month containing each week's START date and their excesses
  summed. The threshold is still reported as 72 for reference; the monthly
  figure is a sum of weekly excesses, not a monthly cap.

OUTPUT:
  Only resource/period combinations with positive excess appear.
  Non-exceeding periods are omitted entirely, never zero-filled.
*/
package journal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ExemptionThresholdHours is the statutory weekly hours threshold.
var ExemptionThresholdHours = decimal.NewFromInt(72)

// ExemptionMode selects the aggregation period.
type ExemptionMode string

const (
	ModeWeek  ExemptionMode = "week"
	ModeMonth ExemptionMode = "month"
)

// ParseExemptionMode validates a mode string. An unknown value is an error;
// there is no silent default.
func ParseExemptionMode(s string) (ExemptionMode, error) {
	switch ExemptionMode(s) {
	case ModeWeek, ModeMonth:
		return ExemptionMode(s), nil
	default:
		return "", &UnknownModeError{Value: s}
	}
}

// WeekExcess is one employee-week whose summed hours exceed the threshold.
type WeekExcess struct {
	ResourceNo string
	WeekStart  time.Time // Sunday
	WeekEnd    time.Time // Saturday
	Hours      decimal.Decimal
	Threshold  decimal.Decimal
	Excess     decimal.Decimal
}

// Label renders the week range as "YYYY.MM.DD/YYYY.MM.DD".
func (w WeekExcess) Label() string {
	return w.WeekStart.Format("2006.01.02") + "/" + w.WeekEnd.Format("2006.01.02")
}

// MonthExcess is one employee-month aggregation of weekly excesses.
type MonthExcess struct {
	ResourceNo string
	Month      string // "YYYY.MM", month of the week start
	Threshold  decimal.Decimal
	Excess     decimal.Decimal
}

// WeekStartOf returns the Sunday that opens the week containing d.
func WeekStartOf(d time.Time) time.Time {
	day := DateOnly(d)
	return day.AddDate(0, 0, -((Weekday(day) + 1) % 7))
}

// WeeklyExemptions sums hours per (resource, week) and returns the
// combinations exceeding the threshold, sorted by resource then week.
func WeeklyExemptions(entries []TimeEntry) []WeekExcess {
	type weekKey struct {
		resource string
		start    time.Time
	}
	totals := make(map[weekKey]decimal.Decimal)
	for _, e := range entries {
		k := weekKey{resource: e.ResourceNo, start: WeekStartOf(e.WorkDate)}
		totals[k] = totals[k].Add(e.HoursWorked)
	}

	var out []WeekExcess
	for k, sum := range totals {
		if !sum.GreaterThan(ExemptionThresholdHours) {
			continue
		}
		out = append(out, WeekExcess{
			ResourceNo: k.resource,
			WeekStart:  k.start,
			WeekEnd:    k.start.AddDate(0, 0, 6),
			Hours:      sum,
			Threshold:  ExemptionThresholdHours,
			Excess:     sum.Sub(ExemptionThresholdHours),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceNo != out[j].ResourceNo {
			return out[i].ResourceNo < out[j].ResourceNo
		}
		return out[i].WeekStart.Before(out[j].WeekStart)
	})
	return out
}

// MonthlyExemptions groups the weekly excess rows by the month of each
// week's start date and sums the excesses, sorted by resource then month.
func MonthlyExemptions(entries []TimeEntry) []MonthExcess {
	type monthKey struct {
		resource string
		month    string
	}
	totals := make(map[monthKey]decimal.Decimal)
	for _, w := range WeeklyExemptions(entries) {
		k := monthKey{resource: w.ResourceNo, month: w.WeekStart.Format("2006.01")}
		totals[k] = totals[k].Add(w.Excess)
	}

	var out []MonthExcess
	for k, excess := range totals {
		out = append(out, MonthExcess{
			ResourceNo: k.resource,
			Month:      k.month,
			Threshold:  ExemptionThresholdHours,
			Excess:     excess,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceNo != out[j].ResourceNo {
			return out[i].ResourceNo < out[j].ResourceNo
		}
		return out[i].Month < out[j].Month
	})
	return out
}

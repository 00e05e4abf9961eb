/*
overbooking.go - Duplicate overtime and daily overbooking detection

PURPOSE:
  Two independent checks over reconciled entries, both scoped per resource
  and work date:

  1. Duplicate overtime: within rows whose code is in the overtime set, a
     second or later row with identical (resource, date, code, hours) is a
     duplicate. The first occurrence is assumed legitimate.

  2. Overbooked normal daily hours: for non-overtime rows, a running
     cumulative sum of hours per (resource, date) in input order; any row
     pushing the cumulative past that weekday's quota is flagged with the
     cumulative value and the quota it exceeded.

ORDERING:
  The cumulative sum is order-dependent. Both checks use input order, so
  results are reproducible for a given upload.
*/
package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// QUOTAS AND CODE SETS
// =============================================================================

// defaultOvertimeCodes are the VIP codes that post overtime.
var defaultOvertimeCodes = []int{101, 601, 602, 603, 604, 801, 802, 803, 804}

// defaultDailyQuota maps weekday index (Mon=0) to required normal hours.
var defaultDailyQuota = map[int]decimal.Decimal{
	0: decimal.RequireFromString("8.75"), // Monday
	1: decimal.RequireFromString("8.75"), // Tuesday
	2: decimal.RequireFromString("8.75"), // Wednesday
	3: decimal.RequireFromString("8.75"), // Thursday
	4: decimal.RequireFromString("5.00"), // Friday
	5: decimal.Zero,                      // Saturday
	6: decimal.Zero,                      // Sunday
}

// OverbookedEntry is a normal-hours row whose cumulative daily total
// exceeded the weekday quota.
type OverbookedEntry struct {
	TimeEntry
	Cumulative decimal.Decimal // running daily total including this row
	Quota      decimal.Decimal // quota that was exceeded
}

// =============================================================================
// DETECTOR
// =============================================================================

// OverbookingDetector finds duplicate overtime postings and cumulative-hours
// violations against the weekday quota table.
type OverbookingDetector struct {
	overtime map[int]struct{}
	quota    map[int]decimal.Decimal
}

// NewOverbookingDetector builds a detector with the standard overtime code
// set and weekday quota table.
func NewOverbookingDetector() *OverbookingDetector {
	ot := make(map[int]struct{}, len(defaultOvertimeCodes))
	for _, c := range defaultOvertimeCodes {
		ot[c] = struct{}{}
	}
	return &OverbookingDetector{overtime: ot, quota: defaultDailyQuota}
}

// IsOvertimeCode reports whether code belongs to the overtime set.
func (d *OverbookingDetector) IsOvertimeCode(code int) bool {
	_, ok := d.overtime[code]
	return ok
}

// QuotaFor returns the required normal hours for a weekday index (Mon=0).
func (d *OverbookingDetector) QuotaFor(weekday int) decimal.Decimal {
	return d.quota[weekday]
}

// FindDuplicateOvertime returns the second and later occurrences of
// identical (resource, date, code, hours) overtime postings, in input order.
func (d *OverbookingDetector) FindDuplicateOvertime(entries []TimeEntry) []TimeEntry {
	seen := make(map[string]struct{})
	var dups []TimeEntry
	for _, e := range entries {
		if !d.IsOvertimeCode(e.Code) {
			continue
		}
		key := fmt.Sprintf("%s|%s|%d|%s",
			e.ResourceNo, e.WorkDate.Format("2006-01-02"), e.Code, e.HoursWorked.String())
		if _, dup := seen[key]; dup {
			dups = append(dups, e)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// FindOverbookedDaily returns every non-overtime row whose running daily
// cumulative exceeds the weekday quota for its work date.
func (d *OverbookingDetector) FindOverbookedDaily(entries []TimeEntry) []OverbookedEntry {
	cumulative := make(map[string]decimal.Decimal)
	var flagged []OverbookedEntry
	for _, e := range entries {
		if d.IsOvertimeCode(e.Code) {
			continue
		}
		key := e.ResourceNo + "|" + e.WorkDate.Format("2006-01-02")
		sum := cumulative[key].Add(e.HoursWorked)
		cumulative[key] = sum

		quota := d.QuotaFor(Weekday(e.WorkDate))
		if sum.GreaterThan(quota) {
			flagged = append(flagged, OverbookedEntry{
				TimeEntry:  e,
				Cumulative: sum,
				Quota:      quota,
			})
		}
	}
	return flagged
}

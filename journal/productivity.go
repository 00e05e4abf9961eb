/*
productivity.go - Clerk productivity report

PURPOSE:
  Four views over a reconciled hours journal:
    1. Hours worked per (resource, date), productive codes only
    2. Productive entries posted per (originator, date)
    3. Allowance entries posted per (originator, date): code 101 or >= 900
    4. A summary joining total hours per resource with total entries posted
       per originator, matching resource id against originator id

  The join is a left join on the hours side: a resource with no posting
  activity appears with zero entries posted.
*/
package journal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// defaultProductiveCodes are the VIP codes counted as productive work.
var defaultProductiveCodes = []int{
	100, 110, 111, 113, 114, 115, 116, 117,
	290, 601, 602, 603, 604, 700, 750, 752,
	801, 802, 803, 804,
}

// ResourceDayHours is summed productive hours for one resource on one day.
type ResourceDayHours struct {
	ResourceNo string
	Date       time.Time
	Hours      decimal.Decimal
}

// OriginatorDayCount is the number of entries one user posted on one day.
type OriginatorDayCount struct {
	Originator string
	Date       time.Time
	Entries    int
}

// ProductivitySummary joins total hours per resource with total postings
// per matching originator.
type ProductivitySummary struct {
	ResourceNo    string
	HoursWorked   decimal.Decimal
	EntriesPosted int
}

// ProductivityReport bundles the report sheets.
type ProductivityReport struct {
	HoursWorked      []ResourceDayHours
	ProductivePosted []OriginatorDayCount
	AllowancePosted  []OriginatorDayCount
	Summary          []ProductivitySummary
}

// BuildProductivityReport computes all four views over reconciled entries.
func BuildProductivityReport(entries []TimeEntry) *ProductivityReport {
	productive := make(map[int]struct{}, len(defaultProductiveCodes))
	for _, c := range defaultProductiveCodes {
		productive[c] = struct{}{}
	}
	isProductive := func(code int) bool {
		_, ok := productive[code]
		return ok
	}
	isAllowance := func(code int) bool {
		return code == 101 || code >= 900
	}

	r := &ProductivityReport{}
	r.HoursWorked = sumHoursByResourceDay(entries, isProductive)
	r.ProductivePosted = countByOriginatorDay(entries, isProductive)
	r.AllowancePosted = countByOriginatorDay(entries, isAllowance)

	// Totals for the summary join.
	hoursTotal := make(map[string]decimal.Decimal)
	for _, h := range r.HoursWorked {
		hoursTotal[h.ResourceNo] = hoursTotal[h.ResourceNo].Add(h.Hours)
	}
	postedTotal := make(map[string]int)
	for _, p := range r.ProductivePosted {
		postedTotal[p.Originator] += p.Entries
	}
	for _, p := range r.AllowancePosted {
		postedTotal[p.Originator] += p.Entries
	}

	resources := make([]string, 0, len(hoursTotal))
	for res := range hoursTotal {
		resources = append(resources, res)
	}
	sort.Strings(resources)
	for _, res := range resources {
		r.Summary = append(r.Summary, ProductivitySummary{
			ResourceNo:    res,
			HoursWorked:   hoursTotal[res],
			EntriesPosted: postedTotal[res],
		})
	}
	return r
}

func sumHoursByResourceDay(entries []TimeEntry, include func(int) bool) []ResourceDayHours {
	type dayKey struct {
		resource string
		date     time.Time
	}
	totals := make(map[dayKey]decimal.Decimal)
	for _, e := range entries {
		if !include(e.Code) {
			continue
		}
		k := dayKey{resource: e.ResourceNo, date: DateOnly(e.WorkDate)}
		totals[k] = totals[k].Add(e.HoursWorked)
	}

	out := make([]ResourceDayHours, 0, len(totals))
	for k, sum := range totals {
		out = append(out, ResourceDayHours{ResourceNo: k.resource, Date: k.date, Hours: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceNo != out[j].ResourceNo {
			return out[i].ResourceNo < out[j].ResourceNo
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func countByOriginatorDay(entries []TimeEntry, include func(int) bool) []OriginatorDayCount {
	type dayKey struct {
		originator string
		date       time.Time
	}
	counts := make(map[dayKey]int)
	for _, e := range entries {
		if !include(e.Code) {
			continue
		}
		counts[dayKey{originator: e.Originator, date: DateOnly(e.WorkDate)}]++
	}

	out := make([]OriginatorDayCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, OriginatorDayCount{Originator: k.originator, Date: k.date, Entries: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Originator != out[j].Originator {
			return out[i].Originator < out[j].Originator
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

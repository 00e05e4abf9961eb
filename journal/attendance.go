/*
attendance.go - Attendance list, site summary, and multiple-clockings checks

PURPOSE:
  Reports over clock-machine exports. A clock number uniquely identifies an
  employee; WTT identifies the site. One attendance per employee per site
  per day; repeated scans are noise unless they cross the multiple-clockings
  threshold.
*/
package journal

import (
	"sort"
	"time"
)

// multipleClockingsThreshold: more scans than this per clock per day flags
// every scan in the group.
const multipleClockingsThreshold = 3

// SiteAttendance is the unique-employee count for one site on one day.
type SiteAttendance struct {
	Site       string
	Date       time.Time
	Attendance int
}

// UniqueAttendance drops repeated scans, keeping the first occurrence of
// each (site, date, clock no) combination in input order.
func UniqueAttendance(events []ClockEvent) []ClockEvent {
	type scanKey struct {
		site  string
		date  time.Time
		clock string
	}
	seen := make(map[scanKey]struct{}, len(events))
	out := make([]ClockEvent, 0, len(events))
	for _, ev := range events {
		k := scanKey{site: ev.Site, date: DateOnly(ev.Date), clock: ev.ClockNo}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, ev)
	}
	return out
}

// SiteSummary counts unique employees per site per day, sorted by site then
// date.
func SiteSummary(events []ClockEvent) []SiteAttendance {
	type siteKey struct {
		site string
		date time.Time
	}
	counts := make(map[siteKey]int)
	for _, ev := range UniqueAttendance(events) {
		counts[siteKey{site: ev.Site, date: DateOnly(ev.Date)}]++
	}

	out := make([]SiteAttendance, 0, len(counts))
	for k, n := range counts {
		out = append(out, SiteAttendance{Site: k.site, Date: k.date, Attendance: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Site != out[j].Site {
			return out[i].Site < out[j].Site
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// MultipleClockings returns every scan belonging to a (clock no, date) group
// with more scans than the threshold, in input order.
func MultipleClockings(events []ClockEvent) []ClockEvent {
	type clockKey struct {
		clock string
		date  time.Time
	}
	counts := make(map[clockKey]int, len(events))
	for _, ev := range events {
		counts[clockKey{clock: ev.ClockNo, date: DateOnly(ev.Date)}]++
	}

	var flagged []ClockEvent
	for _, ev := range events {
		if counts[clockKey{clock: ev.ClockNo, date: DateOnly(ev.Date)}] > multipleClockingsThreshold {
			flagged = append(flagged, ev)
		}
	}
	return flagged
}

/*
calendar.go - Weekday and public-holiday oracle

PURPOSE:
  Pure calendar queries used by day-type classification and the overbooking
  quota table. Holidays follow the South African public-holiday calendar.

OBSERVED RULE:
  A public holiday that falls on a Sunday is observed on the following
  Monday: the Monday ALSO reports as a holiday. The Sunday keeps its own
  holiday flag; the Monday is an addition, not a replacement.

MOVABLE HOLIDAYS:
  Good Friday and Family Day derive from Easter Sunday, computed with the
  anonymous Gregorian (Meeus/Jones/Butcher) algorithm. Everything else is a
  fixed month/day.

CONCURRENCY:
  Per-year holiday tables are computed lazily and cached behind an RWMutex,
  so a single Calendar is safely shared across requests for the lifetime of
  the process.
*/
package journal

import (
	"sync"
	"time"
)

// Weekday returns the weekday index of d with Monday=0 .. Sunday=6.
func Weekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// Calendar answers public-holiday queries for a fixed jurisdiction.
type Calendar struct {
	mu    sync.RWMutex
	years map[int]map[time.Time]string // date -> holiday name
}

// NewSouthAfricaCalendar returns a calendar for South African public
// holidays with the Sunday-to-Monday observed rule applied.
func NewSouthAfricaCalendar() *Calendar {
	return &Calendar{years: make(map[int]map[time.Time]string)}
}

// IsHoliday reports whether d (time-of-day ignored) is an observed public
// holiday.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.lookup(DateOnly(d))
	return ok
}

// HolidayName returns the holiday name for d, or "" if d is not a holiday.
func (c *Calendar) HolidayName(d time.Time) string {
	name, _ := c.lookup(DateOnly(d))
	return name
}

func (c *Calendar) lookup(day time.Time) (string, bool) {
	year := day.Year()

	c.mu.RLock()
	table, ok := c.years[year]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		table, ok = c.years[year]
		if !ok {
			table = southAfricaHolidays(year)
			c.years[year] = table
		}
		c.mu.Unlock()
	}

	name, ok := table[day]
	return name, ok
}

// =============================================================================
// HOLIDAY TABLE CONSTRUCTION
// =============================================================================

func southAfricaHolidays(year int) map[time.Time]string {
	date := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}

	easter := easterSunday(year)

	base := map[time.Time]string{
		date(time.January, 1):    "New Year's Day",
		date(time.March, 21):     "Human Rights Day",
		easter.AddDate(0, 0, -2): "Good Friday",
		easter.AddDate(0, 0, 1):  "Family Day",
		date(time.April, 27):     "Freedom Day",
		date(time.May, 1):        "Workers' Day",
		date(time.June, 16):      "Youth Day",
		date(time.August, 9):     "National Women's Day",
		date(time.September, 24): "Heritage Day",
		date(time.December, 16):  "Day of Reconciliation",
		date(time.December, 25):  "Christmas Day",
		date(time.December, 26):  "Day of Goodwill",
	}

	// Observed shift: a Sunday holiday adds the following Monday.
	table := make(map[time.Time]string, len(base)+2)
	for day, name := range base {
		table[day] = name
	}
	for day, name := range base {
		if day.Weekday() == time.Sunday {
			monday := day.AddDate(0, 0, 1)
			if _, taken := table[monday]; !taken {
				table[monday] = name + " (observed)"
			}
		}
	}
	return table
}

// easterSunday computes Easter Sunday for a year in the Gregorian calendar
// (anonymous Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

/*
sheets.go - Report result sets rendered as export sheets

Column names mirror the source spreadsheet headers so round-tripping a
report back into other tooling keeps working.
*/
package api

import (
	"strconv"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/export"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
)

const dateLayout = "2006-01-02"

func timeEntrySheet(name string, entries []journal.TimeEntry) export.Sheet {
	sheet := export.Sheet{
		Name: name,
		Header: []string{
			"Entry No.", "Resource no.", "Work date", "VIP Code",
			"Hours worked", "User Originator",
		},
	}
	for _, e := range entries {
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(e.EntryNo, 10),
			e.ResourceNo,
			e.WorkDate.Format(dateLayout),
			strconv.Itoa(e.Code),
			e.HoursWorked.String(),
			e.Originator,
		})
	}
	return sheet
}

func incorrectVIPSheet(incorrect []journal.IncorrectEntry) export.Sheet {
	sheet := export.Sheet{
		Name: "Incorrect VIP Codes",
		Header: []string{
			"Entry No.", "Resource no.", "Work date", "Day Type",
			"VIP Code", "Hours worked", "User Originator",
		},
	}
	for _, e := range incorrect {
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(e.EntryNo, 10),
			e.ResourceNo,
			e.WorkDate.Format(dateLayout),
			string(e.DayType),
			strconv.Itoa(e.Code),
			e.HoursWorked.String(),
			e.Originator,
		})
	}
	return sheet
}

func overbookedSheet(overbooked []journal.OverbookedEntry) export.Sheet {
	sheet := export.Sheet{
		Name: "Overbooked Normal Daily",
		Header: []string{
			"Entry No.", "Resource no.", "Work date", "VIP Code",
			"Hours worked", "Cumulative Hours", "Required Hours", "User Originator",
		},
	}
	for _, e := range overbooked {
		sheet.Rows = append(sheet.Rows, []string{
			strconv.FormatInt(e.EntryNo, 10),
			e.ResourceNo,
			e.WorkDate.Format(dateLayout),
			strconv.Itoa(e.Code),
			e.HoursWorked.String(),
			e.Cumulative.String(),
			e.Quota.String(),
			e.Originator,
		})
	}
	return sheet
}

func originatorSheet(name string, counts []journal.OriginatorCount) export.Sheet {
	sheet := export.Sheet{
		Name:   name,
		Header: []string{"User Originator", "Flagged Entries"},
	}
	for _, c := range counts {
		sheet.Rows = append(sheet.Rows, []string{c.Originator, strconv.Itoa(c.Count)})
	}
	return sheet
}

func weeklyExemptionSheet(weekly []journal.WeekExcess) export.Sheet {
	sheet := export.Sheet{
		Name:   "Exemption",
		Header: []string{"Resource no.", "Week", "Hours worked", "Exemption", "Excess"},
	}
	for _, w := range weekly {
		sheet.Rows = append(sheet.Rows, []string{
			w.ResourceNo,
			w.Label(),
			w.Hours.String(),
			w.Threshold.String(),
			w.Excess.String(),
		})
	}
	return sheet
}

func monthlyExemptionSheet(monthly []journal.MonthExcess) export.Sheet {
	sheet := export.Sheet{
		Name:   "Exemption",
		Header: []string{"Resource no.", "Month", "Exemption", "Excess"},
	}
	for _, m := range monthly {
		sheet.Rows = append(sheet.Rows, []string{
			m.ResourceNo,
			m.Month,
			m.Threshold.String(),
			m.Excess.String(),
		})
	}
	return sheet
}

func clockEventSheet(name string, events []journal.ClockEvent) export.Sheet {
	sheet := export.Sheet{
		Name:   name,
		Header: []string{"Clock No.", "Date", "WTT", "MeterID"},
	}
	for _, ev := range events {
		sheet.Rows = append(sheet.Rows, []string{
			ev.ClockNo,
			ev.Date.Format(dateLayout),
			ev.Site,
			ev.MeterID,
		})
	}
	return sheet
}

func siteSummarySheet(summary []journal.SiteAttendance) export.Sheet {
	sheet := export.Sheet{
		Name:   "Site Summary",
		Header: []string{"WTT", "Date", "Attendance"},
	}
	for _, s := range summary {
		sheet.Rows = append(sheet.Rows, []string{
			s.Site,
			s.Date.Format(dateLayout),
			strconv.Itoa(s.Attendance),
		})
	}
	return sheet
}

func productivitySheets(r *journal.ProductivityReport) []export.Sheet {
	hours := export.Sheet{
		Name:   "Hours Worked",
		Header: []string{"Resource no.", "Work date", "Hours worked"},
	}
	for _, h := range r.HoursWorked {
		hours.Rows = append(hours.Rows, []string{
			h.ResourceNo, h.Date.Format(dateLayout), h.Hours.String(),
		})
	}

	posted := func(name string, counts []journal.OriginatorDayCount) export.Sheet {
		sheet := export.Sheet{
			Name:   name,
			Header: []string{"User Originator", "Work date", "Entries posted"},
		}
		for _, c := range counts {
			sheet.Rows = append(sheet.Rows, []string{
				c.Originator, c.Date.Format(dateLayout), strconv.Itoa(c.Entries),
			})
		}
		return sheet
	}

	summary := export.Sheet{
		Name:   "Summary",
		Header: []string{"Resource no.", "Hours worked", "Entries posted"},
	}
	for _, s := range r.Summary {
		summary.Rows = append(summary.Rows, []string{
			s.ResourceNo, s.HoursWorked.String(), strconv.Itoa(s.EntriesPosted),
		})
	}

	return []export.Sheet{
		hours,
		posted("Productive Posted", r.ProductivePosted),
		posted("Allowance Posted", r.AllowancePosted),
		summary,
	}
}

package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
)

func scan(clock, site string, day time.Time) journal.ClockEvent {
	return journal.ClockEvent{ClockNo: clock, Site: site, Date: day}
}

// =============================================================================
// UNIQUE ATTENDANCE
// =============================================================================

func TestUniqueAttendance_DropsRepeatedScans(t *testing.T) {
	mon := date(2025, time.January, 6)

	unique := journal.UniqueAttendance([]journal.ClockEvent{
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-01", mon), // repeated scan, same day
		scan("C2", "WTT-01", mon),
	})

	require.Len(t, unique, 2)
	assert.Equal(t, "C1", unique[0].ClockNo)
	assert.Equal(t, "C2", unique[1].ClockNo)
}

func TestUniqueAttendance_DifferentSiteOrDayKept(t *testing.T) {
	mon := date(2025, time.January, 6)
	tue := date(2025, time.January, 7)

	unique := journal.UniqueAttendance([]journal.ClockEvent{
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-02", mon), // other site
		scan("C1", "WTT-01", tue), // other day
	})

	assert.Len(t, unique, 3)
}

// =============================================================================
// SITE SUMMARY
// =============================================================================

func TestSiteSummary_CountsUniqueEmployeesPerSiteDay(t *testing.T) {
	mon := date(2025, time.January, 6)
	tue := date(2025, time.January, 7)

	summary := journal.SiteSummary([]journal.ClockEvent{
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-01", mon), // duplicate scan ignored
		scan("C2", "WTT-01", mon),
		scan("C1", "WTT-01", tue),
		scan("C3", "WTT-02", mon),
	})

	require.Len(t, summary, 3)
	assert.Equal(t, journal.SiteAttendance{Site: "WTT-01", Date: mon, Attendance: 2}, summary[0])
	assert.Equal(t, journal.SiteAttendance{Site: "WTT-01", Date: tue, Attendance: 1}, summary[1])
	assert.Equal(t, journal.SiteAttendance{Site: "WTT-02", Date: mon, Attendance: 1}, summary[2])
}

// =============================================================================
// MULTIPLE CLOCKINGS
// =============================================================================

func TestMultipleClockings_FlagsGroupsAboveThreshold(t *testing.T) {
	mon := date(2025, time.January, 6)

	events := []journal.ClockEvent{
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-01", mon),
		scan("C1", "WTT-01", mon), // 4 scans: over the threshold of 3
		scan("C2", "WTT-01", mon),
		scan("C2", "WTT-01", mon),
		scan("C2", "WTT-01", mon), // exactly 3: not flagged
	}

	flagged := journal.MultipleClockings(events)

	require.Len(t, flagged, 4)
	for _, ev := range flagged {
		assert.Equal(t, "C1", ev.ClockNo)
	}
}

func TestMultipleClockings_EmptyResultIsValid(t *testing.T) {
	mon := date(2025, time.January, 6)

	assert.Empty(t, journal.MultipleClockings([]journal.ClockEvent{
		scan("C1", "WTT-01", mon),
	}))
}

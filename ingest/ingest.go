/*
Package ingest is the spreadsheet boundary of the report engine.

PURPOSE:
  Converts uploaded .xlsx or .csv exports into typed journal records. All
  schema concerns live here: required-column validation, header mapping,
  and type coercion. Core rule packages never see raw key/value rows.

VALIDATION:
  - The required columns must all be present in the header row; a missing
    column fails the upload before any row is parsed.
  - A cell that cannot be coerced to its column type fails the whole run
    with a journal.FieldFormatError naming the row, column, and value.
    Rows are never silently skipped.
  - Fully blank rows are ignored.

FORMATS:
  .xlsx is read with excelize (first sheet); .csv with encoding/csv.
  Anything else is rejected as a data-format error.
*/
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
)

// Hours-journal export columns.
const (
	ColEntryNo    = "Entry No."
	ColResourceNo = "Resource no."
	ColWorkDate   = "Work date"
	ColVIPCode    = "VIP Code"
	ColHours      = "Hours worked"
	ColAppliesTo  = "Applies-To Entry"
	ColOriginator = "User Originator"
)

// Clock-machine export columns.
const (
	ColClockNo = "Clock No."
	ColDate    = "Date"
	ColSite    = "WTT"
	ColMeterID = "MeterID"
)

var timeEntryColumns = []string{
	ColEntryNo, ColResourceNo, ColWorkDate, ColVIPCode,
	ColHours, ColAppliesTo, ColOriginator,
}

var clockEventColumns = []string{ColClockNo, ColDate, ColSite}

// Date layouts accepted for work-date cells. Excel renders date cells in a
// handful of shapes depending on the source workbook's cell style.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"01/02/2006",
}

// MissingColumnsError reports required columns absent from the header row.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return journal.ErrDataFormat }

// =============================================================================
// PUBLIC LOADERS
// =============================================================================

// LoadTimeEntries reads an hours-journal export into typed entries.
// The filename selects the format by extension (.xlsx or .csv).
func LoadTimeEntries(r io.Reader, filename string) ([]journal.TimeEntry, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	header, data, err := splitHeader(rows, timeEntryColumns)
	if err != nil {
		return nil, err
	}

	entries := make([]journal.TimeEntry, 0, len(data))
	for i, row := range data {
		rowNo := i + 1
		if blankRow(row) {
			continue
		}

		entryNo, err := parseInt64(cell(row, header[ColEntryNo]), rowNo, ColEntryNo)
		if err != nil {
			return nil, err
		}
		code, err := parseInt(cell(row, header[ColVIPCode]), rowNo, ColVIPCode)
		if err != nil {
			return nil, err
		}
		hours, err := parseDecimal(cell(row, header[ColHours]), rowNo, ColHours)
		if err != nil {
			return nil, err
		}
		workDate, err := parseDate(cell(row, header[ColWorkDate]), rowNo, ColWorkDate)
		if err != nil {
			return nil, err
		}
		appliesTo, err := parseOptionalInt64(cell(row, header[ColAppliesTo]), rowNo, ColAppliesTo)
		if err != nil {
			return nil, err
		}

		entries = append(entries, journal.TimeEntry{
			EntryNo:     entryNo,
			ResourceNo:  strings.TrimSpace(cell(row, header[ColResourceNo])),
			WorkDate:    workDate,
			Code:        code,
			HoursWorked: hours,
			AppliesTo:   appliesTo,
			Originator:  strings.TrimSpace(cell(row, header[ColOriginator])),
		})
	}
	return entries, nil
}

// LoadClockEvents reads a clock-machine export into typed events.
func LoadClockEvents(r io.Reader, filename string) ([]journal.ClockEvent, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	header, data, err := splitHeader(rows, clockEventColumns)
	if err != nil {
		return nil, err
	}

	// MeterID is optional in older exports.
	meterIdx, hasMeter := header[ColMeterID]

	events := make([]journal.ClockEvent, 0, len(data))
	for i, row := range data {
		rowNo := i + 1
		if blankRow(row) {
			continue
		}

		date, err := parseDate(cell(row, header[ColDate]), rowNo, ColDate)
		if err != nil {
			return nil, err
		}

		ev := journal.ClockEvent{
			ClockNo: strings.TrimSpace(cell(row, header[ColClockNo])),
			Date:    date,
			Site:    strings.TrimSpace(cell(row, header[ColSite])),
		}
		if hasMeter {
			ev.MeterID = strings.TrimSpace(cell(row, meterIdx))
		}
		events = append(events, ev)
	}
	return events, nil
}

// =============================================================================
// ROW READING
// =============================================================================

func readRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, errors.Wrapf(journal.ErrDataFormat,
			"unsupported file type %q (want .xlsx or .csv)", filepath.Ext(filename))
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled by cell()
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return rows, nil
}

// splitHeader maps required column names to indexes and returns the data
// rows. The header map also carries any optional columns found.
func splitHeader(rows [][]string, required []string) (map[string]int, [][]string, error) {
	if len(rows) == 0 {
		return nil, nil, errors.Wrap(journal.ErrDataFormat, "file has no header row")
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := header[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Missing: missing}
	}
	return header, rows[1:], nil
}

// =============================================================================
// CELL COERCION
// =============================================================================

// cell tolerates ragged rows: excelize trims trailing empty cells.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseInt(s string, row int, column string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &journal.FieldFormatError{Row: row, Column: column, Value: s, Want: "integer"}
	}
	return n, nil
}

func parseInt64(s string, row int, column string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &journal.FieldFormatError{Row: row, Column: column, Value: s, Want: "integer"}
	}
	return n, nil
}

func parseOptionalInt64(s string, row int, column string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := parseInt64(s, row, column)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseDecimal(s string, row int, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &journal.FieldFormatError{Row: row, Column: column, Value: s, Want: "decimal"}
	}
	return d, nil
}

func parseDate(s string, row int, column string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return journal.DateOnly(t), nil
		}
	}
	return time.Time{}, &journal.FieldFormatError{Row: row, Column: column, Value: s, Want: "date"}
}

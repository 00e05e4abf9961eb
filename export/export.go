/*
Package export writes report result sets to downloadable .xlsx workbooks.

PURPOSE:
  Each report endpoint produces one or more named tabular sheets. This
  package renders them into a workbook with excelize, stores the file under
  the export directory with a uuid-suffixed name, and hands back a key the
  API maps to a download URL.

DURABILITY:
  Files are regenerable from the source upload; the export directory is a
  cache, not a system of record.
*/
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet is one named tabular result set.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Exporter writes workbooks under a local directory.
type Exporter struct {
	dir string
}

// NewExporter ensures the export directory exists.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create export directory %q", dir)
	}
	return &Exporter{dir: dir}, nil
}

// Dir returns the export directory, used by the router to serve downloads.
func (e *Exporter) Dir() string { return e.dir }

// Write renders the sheets into a workbook stored as
// {prefix}/{filenamePrefix}_{date}_{uuid}.xlsx and returns the key.
func (e *Exporter) Write(prefix, filenamePrefix string, sheets []Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", errors.New("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheet.Name
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return "", errors.Wrapf(err, "rename sheet %q", name)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return "", errors.Wrapf(err, "create sheet %q", name)
			}
		}

		if err := writeRow(f, name, 1, sheet.Header); err != nil {
			return "", err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return "", err
			}
		}
	}

	key := filepath.Join(prefix, fmt.Sprintf("%s_%s_%s.xlsx",
		filenamePrefix, time.Now().UTC().Format("20060102"), uuid.NewString()))

	path := filepath.Join(e.dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create export subdirectory")
	}
	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrapf(err, "save workbook %q", path)
	}
	return filepath.ToSlash(key), nil
}

// URL maps a key to the download path served by the API.
func (e *Exporter) URL(key string) string {
	return "/exports/" + strings.TrimPrefix(filepath.ToSlash(key), "/")
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	axis, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return errors.Wrap(err, "cell coordinates")
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return errors.Wrapf(err, "write row %d of %q", rowNo, sheet)
	}
	return nil
}

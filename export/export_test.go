package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/export"
)

func TestExporter_WriteCreatesWorkbook(t *testing.T) {
	dir := t.TempDir()
	e, err := export.NewExporter(dir)
	require.NoError(t, err)

	key, err := e.Write("vip-validation", "incorrect_vip", []export.Sheet{
		{
			Name:   "Incorrect VIP Codes",
			Header: []string{"Entry No.", "VIP Code"},
			Rows:   [][]string{{"1", "999"}, {"2", "888"}},
		},
		{
			Name:   "Summary By Originator",
			Header: []string{"User Originator", "Flagged Entries"},
			Rows:   [][]string{{"alice", "2"}},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "vip-validation/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))

	// The workbook must exist and contain both sheets with the written rows.
	f, err := excelize.OpenFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Incorrect VIP Codes", "Summary By Originator"},
		f.GetSheetList())

	rows, err := f.GetRows("Incorrect VIP Codes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Entry No.", "VIP Code"}, rows[0])
	assert.Equal(t, []string{"1", "999"}, rows[1])
}

func TestExporter_KeysAreUnique(t *testing.T) {
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	sheets := []export.Sheet{{Name: "S", Header: []string{"a"}}}
	k1, err := e.Write("p", "f", sheets)
	require.NoError(t, err)
	k2, err := e.Write("p", "f", sheets)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestExporter_URL(t *testing.T) {
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/exports/p/file.xlsx", e.URL("p/file.xlsx"))
}

func TestExporter_NoSheetsIsError(t *testing.T) {
	e, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)

	_, err = e.Write("p", "f", nil)
	assert.Error(t, err)
}

func TestNewExporter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := export.NewExporter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

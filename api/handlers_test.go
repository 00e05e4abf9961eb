package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/api"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/export"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const testRulesJSON = `{
	"hour_codes": {
		"mon_fri_normal":    [100],
		"mon_fri_overtime":  [200],
		"saturday_overtime": [300],
		"sunday_overtime":   [400],
		"holiday_normal":    [500],
		"holiday_overtime":  [600],
		"driver":            [700]
	}
}`

type testEnv struct {
	router    http.Handler
	exportDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	exportDir := t.TempDir()
	exporter, err := export.NewExporter(exportDir)
	require.NoError(t, err)

	rulesPath := filepath.Join(t.TempDir(), "vipcodes.json")
	require.NoError(t, os.WriteFile(rulesPath, []byte(testRulesJSON), 0o644))

	log := logrus.New()
	log.SetOutput(io.Discard)

	handler := api.NewHandler(store, exporter, journal.NewSouthAfricaCalendar(),
		rulesPath, 10*1024*1024, log)
	return &testEnv{router: api.NewRouter(handler), exportDir: exportDir}
}

func uploadRequest(t *testing.T, url, filename, contents string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) api.ReportResponseDTO {
	t.Helper()
	var resp api.ReportResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// =============================================================================
// VIP VALIDATION
// =============================================================================

func TestValidateVIP_FlagsSaturdayRow(t *testing.T) {
	// Monday/100 and Sunday/400 pass; Saturday/999 is flagged.
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,100,5,,alice
2,R2,2025-01-11,999,4,,bob
3,R3,2025-01-12,400,6,,carol
`
	rec := env.do(uploadRequest(t, "/api/vip-validation", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeReport(t, rec)
	assert.Equal(t, 1, resp.IncorrectRows)
	require.NotEmpty(t, resp.DownloadURL)

	// The workbook is downloadable through the exports route.
	download := env.do(httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
	assert.Equal(t, http.StatusOK, download.Code)
}

func TestValidateVIP_ReversedPairExcluded(t *testing.T) {
	// The bad Saturday posting is reversed, so nothing is flagged.
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-11,999,4,,alice
2,R1,2025-01-11,999,-4,1,alice
`
	rec := env.do(uploadRequest(t, "/api/vip-validation", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReport(t, rec)
	assert.Equal(t, 0, resp.IncorrectRows)
	assert.Equal(t, "No incorrect VIP codes found", resp.Message)
	assert.Empty(t, resp.DownloadURL)
}

func TestValidateVIP_NonNumericCodeIs400(t *testing.T) {
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,banana,5,,alice
`
	rec := env.do(uploadRequest(t, "/api/vip-validation", "journal.csv", csv))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "banana")
	assert.Contains(t, rec.Body.String(), "VIP Code")
}

func TestValidateVIP_MissingRuleFileIs500(t *testing.T) {
	env := newTestEnv(t)

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	exporter, err := export.NewExporter(t.TempDir())
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)

	broken := api.NewRouter(api.NewHandler(store, exporter,
		journal.NewSouthAfricaCalendar(), "/nonexistent/rules.json", 1<<20, log))
	env.router = broken

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,100,5,,alice
`
	rec := env.do(uploadRequest(t, "/api/vip-validation", "journal.csv", csv))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestValidateVIP_MissingFileFieldIs400(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vip-validation", nil)
	rec := env.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// OVERBOOKING
// =============================================================================

func TestDetectOverbooking_FlagsDuplicateAndCumulative(t *testing.T) {
	env := newTestEnv(t)

	// Duplicate overtime (601) and a second 5h normal row pushing the
	// Monday cumulative to 10 > 8.75.
	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,601,4,,alice
2,R1,2025-01-06,601,4,,alice
3,R2,2025-01-06,100,5,,bob
4,R2,2025-01-06,100,5,,bob
`
	rec := env.do(uploadRequest(t, "/api/overbooking", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeReport(t, rec)
	assert.Equal(t, 2, resp.IncorrectRows)
	assert.NotEmpty(t, resp.DownloadURL)
}

func TestDetectOverbooking_CleanJournal(t *testing.T) {
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,100,8,,alice
`
	rec := env.do(uploadRequest(t, "/api/overbooking", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReport(t, rec)
	assert.Equal(t, 0, resp.IncorrectRows)
	assert.Equal(t, "No duplicate or overbooked entries found", resp.Message)
}

// =============================================================================
// EXEMPTION
// =============================================================================

func TestExemptionReport_WeeklyExcess(t *testing.T) {
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,100,40,,alice
2,R1,2025-01-07,100,40,,alice
3,R2,2025-01-06,100,70,,bob
`
	rec := env.do(uploadRequest(t, "/api/exemption?type=week", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeReport(t, rec)
	assert.Equal(t, 1, resp.IncorrectRows)
}

func TestExemptionReport_UnknownModeIs400(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t, "/api/exemption?type=year", "journal.csv", "x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "year")
}

// =============================================================================
// ATTENDANCE / CLOCKINGS
// =============================================================================

func TestAttendanceList_DeduplicatesScans(t *testing.T) {
	env := newTestEnv(t)

	csv := `Clock No.,Date,WTT,MeterID
C1,2025-01-06,WTT-01,M1
C1,2025-01-06,WTT-01,M1
C2,2025-01-06,WTT-01,M1
`
	rec := env.do(uploadRequest(t, "/api/attendance/list", "clocks.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeReport(t, rec)
	assert.Equal(t, 2, resp.IncorrectRows)
}

func TestMultipleClockings_NoneFound(t *testing.T) {
	env := newTestEnv(t)

	csv := `Clock No.,Date,WTT,MeterID
C1,2025-01-06,WTT-01,M1
`
	rec := env.do(uploadRequest(t, "/api/clockings", "clocks.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeReport(t, rec)
	assert.Equal(t, 0, resp.IncorrectRows)
	assert.Equal(t, "No multiple clockings found", resp.Message)
}

// =============================================================================
// PRODUCTIVITY
// =============================================================================

func TestProductivityReport_ProducesWorkbook(t *testing.T) {
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R1,2025-01-06,100,8,,R1
2,R1,2025-01-07,601,2,,R1
`
	rec := env.do(uploadRequest(t, "/api/productivity-report", "journal.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeReport(t, rec)
	assert.NotEmpty(t, resp.DownloadURL)
}

// =============================================================================
// REGISTRY / HEALTH
// =============================================================================

func TestListReportRuns_RecordsRuns(t *testing.T) {
	env := newTestEnv(t)

	csv := `Entry No.,Resource no.,Work date,VIP Code,Hours worked,Applies-To Entry,User Originator
1,R2,2025-01-11,999,4,,bob
`
	require.Equal(t, http.StatusOK,
		env.do(uploadRequest(t, "/api/vip-validation", "journal.csv", csv)).Code)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []api.ReportRunDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "vip-validation", runs[0].Kind)
	assert.Equal(t, 1, runs[0].FlaggedRows)
	assert.NotEmpty(t, runs[0].DownloadURL)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

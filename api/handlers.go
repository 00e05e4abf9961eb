/*
handlers.go - HTTP API handlers for the payroll report engine

PURPOSE:
  Exposes the journal rule engine over REST. Each report endpoint accepts a
  spreadsheet upload, runs reversal reconciliation plus the relevant rules,
  exports flagged rows to a downloadable workbook, and records the run.

ENDPOINTS:
  Reports (multipart "file" upload, .xlsx or .csv):
    POST /api/vip-validation          Incorrect VIP codes per day type
    POST /api/overbooking             Duplicate overtime + overbooked hours
    POST /api/exemption?type=week     Statutory-hour excesses (week|month)
    POST /api/productivity-report     Clerk productivity views

  Attendance (clock-machine exports):
    POST /api/attendance/list         Unique attendance per site/day
    POST /api/attendance/site-summary Unique-employee counts per site/day
    POST /api/clockings               Excessive scans per clock/day

  Registry:
    GET  /api/reports                 Recent report runs
    GET  /api/health                  Liveness

REQUEST FLOW:
  1. Enforce the upload size limit
  2. Ingest the upload into typed records (fail-fast on bad cells)
  3. Reconcile reversals (gaps logged, never fatal)
  4. Run the report rules
  5. Export sheets, record the run, respond with count + download URL

ERROR HANDLING:
  - 400: unsupported format, missing columns, uncoercible values,
         unknown report mode
  - 500: rule configuration failures, export/storage failures
  A report that flags nothing is a 200 with a zero count.
*/
package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/export"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/ingest"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/journal"
	"github.com/Siyabongahenry/SteinalyticsReportAPI/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          *sqlite.Store
	Exporter       *export.Exporter
	Calendar       *journal.Calendar
	RulesPath      string
	MaxUploadBytes int64
	Log            *logrus.Logger
}

// NewHandler wires the handler dependencies. The calendar is shared
// read-only across requests; the rule set is loaded per validation run.
func NewHandler(store *sqlite.Store, exporter *export.Exporter, cal *journal.Calendar,
	rulesPath string, maxUploadBytes int64, log *logrus.Logger) *Handler {
	return &Handler{
		Store:          store,
		Exporter:       exporter,
		Calendar:       cal,
		RulesPath:      rulesPath,
		MaxUploadBytes: maxUploadBytes,
		Log:            log,
	}
}

// =============================================================================
// VIP VALIDATION
// =============================================================================

// ValidateVIP flags journal rows whose VIP code is invalid for the day type
// of their work date.
func (h *Handler) ValidateVIP(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	clean := h.reconcile(entries)

	rules, err := journal.LoadRuleSet(h.RulesPath)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	incorrect := journal.NewVIPValidator(rules, h.Calendar).FindIncorrect(clean)
	if len(incorrect) == 0 {
		h.recordRun(r, "vip-validation", 0, "")
		writeJSON(w, http.StatusOK, ReportResponseDTO{
			Message:       "No incorrect VIP codes found",
			IncorrectRows: 0,
		})
		return
	}

	sheets := []export.Sheet{
		incorrectVIPSheet(incorrect),
		originatorSheet("Summary By Originator", journal.SummarizeByOriginator(incorrect)),
	}
	h.respondWithExport(w, r, "vip-validation", "incorrect_vip", len(incorrect), sheets)
}

// =============================================================================
// OVERBOOKING / DUPLICATES
// =============================================================================

// DetectOverbooking flags duplicated overtime postings and cumulative
// normal-hours violations against the weekday quota.
func (h *Handler) DetectOverbooking(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	clean := h.reconcile(entries)

	detector := journal.NewOverbookingDetector()
	duplicated := detector.FindDuplicateOvertime(clean)
	overbooked := detector.FindOverbookedDaily(clean)

	flagged := len(duplicated) + len(overbooked)
	if flagged == 0 {
		h.recordRun(r, "overbooking", 0, "")
		writeJSON(w, http.StatusOK, ReportResponseDTO{
			Message:       "No duplicate or overbooked entries found",
			IncorrectRows: 0,
		})
		return
	}

	originators := make([]string, 0, flagged)
	for _, e := range duplicated {
		originators = append(originators, e.Originator)
	}
	for _, e := range overbooked {
		originators = append(originators, e.Originator)
	}

	sheets := []export.Sheet{
		timeEntrySheet("Duplicated Overtime", duplicated),
		overbookedSheet(overbooked),
		originatorSheet("Summary By Originator", journal.CountOriginators(originators)),
	}
	h.respondWithExport(w, r, "overbooking", "duplicate_overbooking", flagged, sheets)
}

// =============================================================================
// EXEMPTION
// =============================================================================

// ExemptionReport rolls up worked hours per employee per week or month and
// flags statutory excesses. The ?type= switch has no silent default.
func (h *Handler) ExemptionReport(w http.ResponseWriter, r *http.Request) {
	mode, err := journal.ParseExemptionMode(r.URL.Query().Get("type"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	clean := h.reconcile(entries)

	var sheet export.Sheet
	var flagged int
	switch mode {
	case journal.ModeWeek:
		weekly := journal.WeeklyExemptions(clean)
		flagged = len(weekly)
		sheet = weeklyExemptionSheet(weekly)
	case journal.ModeMonth:
		monthly := journal.MonthlyExemptions(clean)
		flagged = len(monthly)
		sheet = monthlyExemptionSheet(monthly)
	}

	if flagged == 0 {
		h.recordRun(r, "exemption", 0, "")
		writeJSON(w, http.StatusOK, ReportResponseDTO{
			Message:       "No exemption exceeded",
			IncorrectRows: 0,
		})
		return
	}
	h.respondWithExport(w, r, "exemption", "exemption_report", flagged, []export.Sheet{sheet})
}

// =============================================================================
// PRODUCTIVITY
// =============================================================================

// ProductivityReport produces the clerk productivity views over the
// reconciled journal.
func (h *Handler) ProductivityReport(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.loadEntries(w, r)
	if !ok {
		return
	}
	clean := h.reconcile(entries)

	report := journal.BuildProductivityReport(clean)
	sheets := productivitySheets(report)
	h.respondWithExport(w, r, "productivity-report", "productivity_report",
		len(report.Summary), sheets)
}

// =============================================================================
// ATTENDANCE / CLOCKINGS
// =============================================================================

// AttendanceList returns unique employee attendance per site per day.
func (h *Handler) AttendanceList(w http.ResponseWriter, r *http.Request) {
	events, ok := h.loadClockEvents(w, r)
	if !ok {
		return
	}
	unique := journal.UniqueAttendance(events)
	sheets := []export.Sheet{clockEventSheet("Attendance List", unique)}
	h.respondWithExport(w, r, "attendance-list", "attendance_list", len(unique), sheets)
}

// SiteSummary counts unique employees per site per day.
func (h *Handler) SiteSummary(w http.ResponseWriter, r *http.Request) {
	events, ok := h.loadClockEvents(w, r)
	if !ok {
		return
	}
	summary := journal.SiteSummary(events)
	sheets := []export.Sheet{siteSummarySheet(summary)}
	h.respondWithExport(w, r, "site-summary", "site_summary", len(summary), sheets)
}

// MultipleClockings flags clocks with excessive scans on one day.
func (h *Handler) MultipleClockings(w http.ResponseWriter, r *http.Request) {
	events, ok := h.loadClockEvents(w, r)
	if !ok {
		return
	}
	flagged := journal.MultipleClockings(events)
	if len(flagged) == 0 {
		h.recordRun(r, "multiple-clockings", 0, "")
		writeJSON(w, http.StatusOK, ReportResponseDTO{
			Message:       "No multiple clockings found",
			IncorrectRows: 0,
		})
		return
	}
	sheets := []export.Sheet{clockEventSheet("Multiple Clockings", flagged)}
	h.respondWithExport(w, r, "multiple-clockings", "multiple_clockings", len(flagged), sheets)
}

// =============================================================================
// REGISTRY / HEALTH
// =============================================================================

// ListReportRuns returns recent report executions, newest first.
func (h *Handler) ListReportRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list report runs", err)
		return
	}
	dtos := make([]ReportRunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toReportRunDTO(run, h.Exporter.URL)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// UPLOAD HELPERS
// =============================================================================

func (h *Handler) loadEntries(w http.ResponseWriter, r *http.Request) ([]journal.TimeEntry, bool) {
	file, name, ok := h.openUpload(w, r)
	if !ok {
		return nil, false
	}
	defer file.Close()

	entries, err := ingest.LoadTimeEntries(file, name)
	if err != nil {
		h.writeDomainError(w, err)
		return nil, false
	}
	return entries, true
}

func (h *Handler) loadClockEvents(w http.ResponseWriter, r *http.Request) ([]journal.ClockEvent, bool) {
	file, name, ok := h.openUpload(w, r)
	if !ok {
		return nil, false
	}
	defer file.Close()

	events, err := ingest.LoadClockEvents(file, name)
	if err != nil {
		h.writeDomainError(w, err)
		return nil, false
	}
	return events, true
}

func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or oversized upload", err)
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `Missing multipart field "file"`, err)
		return nil, "", false
	}
	return file, header.Filename, true
}

// reconcile removes reversed pairs and logs any dangling targets. Gaps are
// observable, never fatal.
func (h *Handler) reconcile(entries []journal.TimeEntry) []journal.TimeEntry {
	result := journal.Reconcile(entries)
	for _, gap := range result.Gaps {
		h.Log.WithFields(logrus.Fields{
			"reversal_entry_no": gap.ReversalEntryNo,
			"target_entry_no":   gap.TargetEntryNo,
		}).Warn("reversal target not found in dataset")
	}
	return result.Survivors
}

// =============================================================================
// EXPORT + RUN RECORDING
// =============================================================================

func (h *Handler) respondWithExport(w http.ResponseWriter, r *http.Request,
	kind, filenamePrefix string, flagged int, sheets []export.Sheet) {

	key, err := h.Exporter.Write(kind, filenamePrefix, sheets)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export report", err)
		return
	}
	h.recordRun(r, kind, flagged, key)

	writeJSON(w, http.StatusOK, ReportResponseDTO{
		IncorrectRows: flagged,
		DownloadURL:   h.Exporter.URL(key),
	})
}

// recordRun is best-effort: registry failures are logged, not surfaced.
func (h *Handler) recordRun(r *http.Request, kind string, flagged int, fileKey string) {
	run := sqlite.ReportRun{
		ID:          uuid.NewString(),
		Kind:        kind,
		FlaggedRows: flagged,
		FileKey:     fileKey,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.SaveRun(r.Context(), run); err != nil {
		h.Log.WithError(err).WithField("kind", kind).Warn("failed to record report run")
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journal.ErrRuleConfig):
		writeError(w, http.StatusInternalServerError, "Rule configuration error", err)
	case errors.Is(err, journal.ErrDataFormat):
		writeError(w, http.StatusBadRequest, "Invalid file contents", err)
	case errors.Is(err, journal.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "Invalid report mode", err)
	default:
		writeError(w, http.StatusBadRequest, "Failed to read upload", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

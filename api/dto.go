/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  JSON structures returned to clients. Report endpoints respond with a
  flagged-row count and a download URL; a zero count is a valid terminal
  state ("no issues found"), not an error.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - ErrorResponse: the standard error envelope
*/
package api

import (
	"time"

	"github.com/Siyabongahenry/SteinalyticsReportAPI/store/sqlite"
)

// ReportResponseDTO is returned by every upload-and-validate endpoint.
type ReportResponseDTO struct {
	Message       string `json:"message,omitempty"`
	IncorrectRows int    `json:"incorrect_rows"`
	DownloadURL   string `json:"download_url,omitempty"`
}

// ReportRunDTO is one recorded report execution.
type ReportRunDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	FlaggedRows int    `json:"flagged_rows"`
	DownloadURL string `json:"download_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toReportRunDTO(run sqlite.ReportRun, url func(string) string) ReportRunDTO {
	dto := ReportRunDTO{
		ID:          run.ID,
		Kind:        run.Kind,
		FlaggedRows: run.FlaggedRows,
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
	}
	if run.FileKey != "" {
		dto.DownloadURL = url(run.FileKey)
	}
	return dto
}

package entity

import "github.com/shopspring/decimal"

// FileStatus is the outcome of processing one incoming file.
type FileStatus string

const (
	FileProcessed FileStatus = "processed"
	FileNoData    FileStatus = "no_data"
	FileFailed    FileStatus = "failed"
)

// FileResult records what happened to a single incoming file.
type FileResult struct {
	Source      string          `json:"source"`
	Status      FileStatus      `json:"status"`
	ReportPath  string          `json:"report_path,omitempty"`
	ArchivePath string          `json:"archive_path,omitempty"`
	Records     int             `json:"records"`
	Total       decimal.Decimal `json:"total"`
	Described   decimal.Decimal `json:"described"`
	Error       string          `json:"error,omitempty"`
}

// Coverage returns described/total as a percentage, or nil when total is zero.
func (r FileResult) Coverage() *decimal.Decimal {
	if r.Total.IsZero() {
		return nil
	}
	pct := r.Described.Div(r.Total).Mul(decimal.NewFromInt(100)).Round(2)
	return &pct
}

// RunSummary agrega os resultados de uma execução completa.
type RunSummary struct {
	RunID          string       `json:"run_id"`
	Files          []FileResult `json:"files"`
	ProcessedFiles int          `json:"processed_files"`
	TotalRecords   int          `json:"total_records"`
	FailedFiles    int          `json:"failed_files"`
	NoDataFiles    int          `json:"no_data_files"`
	ReportsDir     string       `json:"reports_dir"`
	ArchiveDir     string       `json:"archive_dir"`
}

// Add records a file result and updates the counters.
func (s *RunSummary) Add(r FileResult) {
	s.Files = append(s.Files, r)
	switch r.Status {
	case FileProcessed:
		s.ProcessedFiles++
		s.TotalRecords += r.Records
	case FileNoData:
		s.NoDataFiles++
	case FileFailed:
		s.FailedFiles++
	}
}

package repository

import (
	"github.com/diillson/roreports-go/internal/domain/entity"
)

// ExportRepository writes a joined report in one of the supported formats.
// Each method returns the absolute path of the file written.
type ExportRepository interface {
	ExportReportToCSV(report entity.Report, filename, outputDir string) (string, error)
	ExportReportToXLSX(report entity.Report, filename, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error)
	ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error)
}

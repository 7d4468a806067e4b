package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/roreports-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() entity.Report {
	return entity.Report{
		SourceName: "Выгрузка РО 2024-05-01.csv",
		DateToken:  "2024-05-01",
		Rows: []entity.ReportRow{
			{EntityID: "E2", SystemCode: "S2", Name: "Beta; Ltd", Team: "T0", Total: "3", Described: "1"},
			{EntityID: "E1", SystemCode: "S1", Name: "Alpha", Team: "T1", Total: "10", Described: "7"},
		},
	}
}

func TestExportReportToCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	repo := NewExportRepository(';')

	path, err := repo.ExportReportToCSV(sampleReport(), "Выгрузка РО СПВиРС 2024-05-01", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Выгрузка РО СПВиРС 2024-05-01.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"entity ID;system code;name;team;total;described\r\n"+
			"E2;S2;\"Beta; Ltd\";T0;3;1\r\n"+
			"E1;S1;Alpha;T1;10;7\r\n",
		string(data),
	)
}

func TestExportReportToCSV_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository(';')
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.csv"), []byte("stale content that is longer"), 0644))

	report := sampleReport()
	report.Rows = report.Rows[1:]
	path, err := repo.ExportReportToCSV(report, "r", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "entity ID;system code;name;team;total;described\r\nE1;S1;Alpha;T1;10;7\r\n", string(data))
}

func TestExportReportToJSON(t *testing.T) {
	repo := NewExportRepository(';')

	path, err := repo.ExportReportToJSON(sampleReport(), "report", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got entity.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleReport(), got)
}

func TestExportReportToXLSX(t *testing.T) {
	repo := NewExportRepository(';')

	path, err := repo.ExportReportToXLSX(sampleReport(), "report", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		entity.ReportHeader,
		{"E2", "S2", "Beta; Ltd", "T0", "3", "1"},
		{"E1", "S1", "Alpha", "T1", "10", "7"},
	}, rows)
}

func TestExportReportToPDF(t *testing.T) {
	repo := NewExportRepository(';')
	report := sampleReport()
	for i := 0; i < 60; i++ {
		report.Rows = append(report.Rows, report.Rows[i%2])
	}

	path, err := repo.ExportReportToPDF(report, "report", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Выгру...", truncate("Выгрузка РО", 8))
}

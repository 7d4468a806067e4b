package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/diillson/roreports-go/internal/domain/entity"
	"github.com/diillson/roreports-go/internal/domain/repository"
	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportUseCase handles the batch of incoming report files.
type ReportUseCase struct {
	cfg        *types.Config
	refRepo    repository.ReferenceRepository
	inputRepo  repository.InputRepository
	workspace  repository.WorkspaceRepository
	exportRepo repository.ExportRepository
	uploadRepo repository.UploadRepository
	console    types.ConsoleInterface
	logger     *zap.Logger
}

// NewReportUseCase creates a new report use case. uploadRepo may be nil when
// no bucket is configured.
func NewReportUseCase(
	cfg *types.Config,
	refRepo repository.ReferenceRepository,
	inputRepo repository.InputRepository,
	workspace repository.WorkspaceRepository,
	exportRepo repository.ExportRepository,
	uploadRepo repository.UploadRepository,
	console types.ConsoleInterface,
	logger *zap.Logger,
) *ReportUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportUseCase{
		cfg:        cfg,
		refRepo:    refRepo,
		inputRepo:  inputRepo,
		workspace:  workspace,
		exportRepo: exportRepo,
		uploadRepo: uploadRepo,
		console:    console,
		logger:     logger,
	}
}

// RunBatch executa a execução completa. Um erro retornado é fatal; falhas de arquivos
// individuais ficam no resumo e só viram erro com Strict.
func (uc *ReportUseCase) RunBatch(ctx context.Context) (*entity.RunSummary, error) {
	summary := &entity.RunSummary{
		RunID:      uuid.NewString(),
		ReportsDir: uc.cfg.ReportsPath(),
		ArchiveDir: uc.cfg.ArchPath(),
	}
	log := uc.logger.With(zap.String("run_id", summary.RunID))
	log.Info("run started", zap.String("base_dir", uc.cfg.BaseDir), zap.Bool("dry_run", uc.cfg.DryRun))

	if err := uc.workspace.Provision(); err != nil {
		log.Error("provisioning failed", zap.Error(err))
		return summary, err
	}

	if uc.uploadEnabled() {
		account, err := uc.uploadRepo.VerifyIdentity(ctx)
		if err != nil {
			log.Error("upload credentials check failed", zap.Error(err))
			return summary, err
		}
		log.Info("upload enabled", zap.String("bucket", uc.cfg.Upload.Bucket), zap.String("account", account))
	}

	refs, err := uc.LoadReferences()
	if err != nil {
		log.Error("reference load failed", zap.Error(err))
		return summary, err
	}
	log.Info("references loaded",
		zap.Int("entities", len(refs.Entities)),
		zap.Int("bank", len(refs.Bank)),
	)

	files, err := uc.workspace.ListIncoming()
	if err != nil {
		log.Error("listing incoming files failed", zap.Error(err))
		return summary, err
	}

	for _, path := range files {
		result := uc.ProcessFile(ctx, path, refs, log)
		summary.Add(result)
		uc.reportFile(result)
	}

	uc.printSummary(summary)
	log.Info("run finished",
		zap.Int("processed", summary.ProcessedFiles),
		zap.Int("no_data", summary.NoDataFiles),
		zap.Int("failed", summary.FailedFiles),
		zap.Int("records", summary.TotalRecords),
	)

	if uc.cfg.Strict && summary.FailedFiles > 0 {
		return summary, fmt.Errorf("%w: %d of %d", types.ErrFilesFailed, summary.FailedFiles, len(files))
	}
	return summary, nil
}

// LoadReferences carrega os dois mapeamentos usados pelo join.
func (uc *ReportUseCase) LoadReferences() (entity.References, error) {
	status := uc.console.Status("Loading reference files...")
	defer status.Stop()

	entities, err := uc.refRepo.LoadEntities(uc.cfg.EntitiesPath())
	if err != nil {
		return entity.References{}, err
	}

	status.Update("Loading bank reference...")
	bank, err := uc.refRepo.LoadBank(uc.cfg.BankPath())
	if err != nil {
		return entity.References{}, err
	}

	return entity.References{Entities: entities, Bank: bank}, nil
}

// ProcessFile joins one incoming file, writes its report and archives it.
// The input file is only moved when a report was written.
func (uc *ReportUseCase) ProcessFile(ctx context.Context, path string, refs entity.References, log *zap.Logger) entity.FileResult {
	name := filepath.Base(path)
	result := entity.FileResult{Source: name}
	log = log.With(zap.String("file", name))

	fail := func(err error) entity.FileResult {
		perr := &types.FileProcessingError{File: name, Err: err}
		result.Status = entity.FileFailed
		result.Error = perr.Error()
		log.Error("file failed", zap.Error(perr))
		return result
	}

	dateToken, err := DateToken(name)
	if err != nil {
		return fail(err)
	}

	rows, err := uc.inputRepo.ReadInput(path)
	if err != nil {
		return fail(err)
	}

	joined, dropped := JoinRows(rows, refs)
	if uc.cfg.Verbose {
		for _, d := range dropped {
			uc.console.LogInfo("%s: line %d dropped (%s) %s", name, d.Line, d.Reason, d.SystemCode)
		}
	}
	log.Debug("rows joined", zap.Int("input", len(rows)), zap.Int("joined", len(joined)), zap.Int("dropped", len(dropped)))

	if len(joined) == 0 {
		result.Status = entity.FileNoData
		result.Error = types.ErrNoMatchingRecords.Error()
		log.Warn("no matching records")
		return result
	}

	SortReportRows(joined)
	report := entity.Report{
		SourceName: name,
		DateToken:  dateToken,
		Rows:       joined,
	}
	if uc.cfg.Verbose {
		report.Dropped = dropped
	}

	result.Records = len(joined)
	result.Total, result.Described = entity.SumCounts(joined)

	reportName := fmt.Sprintf("%s %s", uc.cfg.ReportPrefix, dateToken)
	if uc.cfg.DryRun {
		result.Status = entity.FileProcessed
		result.ReportPath = filepath.Join(uc.cfg.ReportsPath(), reportName+".csv")
		log.Info("dry run: report not written", zap.Int("records", result.Records))
		return result
	}

	written, err := uc.exportReport(report, reportName)
	if err != nil {
		return fail(err)
	}
	result.ReportPath = written[0]

	if uc.uploadEnabled() {
		for _, p := range written {
			uri, err := uc.uploadRepo.Upload(ctx, p)
			if err != nil {
				uc.console.LogWarning("Upload failed for %s: %s", filepath.Base(p), err)
				log.Warn("upload failed", zap.String("report", p), zap.Error(err))
				continue
			}
			log.Info("report uploaded", zap.String("uri", uri))
		}
	}

	archived, err := uc.workspace.Archive(path)
	if err != nil {
		return fail(err)
	}
	result.ArchivePath = archived
	result.Status = entity.FileProcessed
	log.Info("file processed",
		zap.String("report", result.ReportPath),
		zap.String("archive", archived),
		zap.Int("records", result.Records),
	)
	return result
}

// exportReport writes the CSV report and any extra renditions. The CSV path is first.
func (uc *ReportUseCase) exportReport(report entity.Report, reportName string) ([]string, error) {
	dir := uc.cfg.ReportsPath()

	csvPath, err := uc.exportRepo.ExportReportToCSV(report, reportName, dir)
	if err != nil {
		return nil, err
	}
	written := []string{csvPath}

	renditions := []struct {
		kind   string
		export func(entity.Report, string, string) (string, error)
	}{
		{"xlsx", uc.exportRepo.ExportReportToXLSX},
		{"pdf", uc.exportRepo.ExportReportToPDF},
		{"json", uc.exportRepo.ExportReportToJSON},
	}
	for _, r := range renditions {
		if !uc.cfg.HasReportType(r.kind) {
			continue
		}
		p, err := r.export(report, reportName, dir)
		if err != nil {
			return written, fmt.Errorf("%s export: %w", r.kind, err)
		}
		written = append(written, p)
	}
	return written, nil
}

func (uc *ReportUseCase) uploadEnabled() bool {
	return uc.uploadRepo != nil && uc.cfg.Upload.Enabled()
}

// reportFile imprime a linha de status de um arquivo.
func (uc *ReportUseCase) reportFile(r entity.FileResult) {
	switch r.Status {
	case entity.FileProcessed:
		uc.console.LogSuccess("Processed: %s -> %s (records: %d)", r.Source, filepath.Base(r.ReportPath), r.Records)
	case entity.FileNoData:
		uc.console.LogNoData("File %s contains no matching records", r.Source)
	case entity.FileFailed:
		uc.console.LogError("%s", r.Error)
	}
}

// printSummary imprime o bloco final.
func (uc *ReportUseCase) printSummary(s *entity.RunSummary) {
	if s.ProcessedFiles == 0 {
		uc.console.Summary(false, "No files to process, or no file contained matching records.")
		return
	}

	uc.console.Println()
	uc.console.Summary(true, "Processing summary:")
	uc.console.Summary(true, "• Files processed: %d", s.ProcessedFiles)
	uc.console.Summary(true, "• Total records in reports: %d", s.TotalRecords)
	uc.console.Summary(true, "• Reports saved to: %s", s.ReportsDir)
	uc.console.Summary(true, "• Archive copies in: %s", s.ArchiveDir)

	table := uc.console.CreateTable()
	table.AddColumn("File")
	table.AddColumn("Status")
	table.AddColumn("Records")
	table.AddColumn("Total")
	table.AddColumn("Described")
	table.AddColumn("Coverage")
	for _, f := range s.Files {
		coverage := "-"
		if pct := f.Coverage(); pct != nil {
			coverage = pct.StringFixed(2) + "%"
		}
		table.AddRow(f.Source, string(f.Status), f.Records, f.Total.String(), f.Described.String(), coverage)
	}
	uc.console.Println(table.Render())
}

// IsFatal reports whether err came from a stage that aborts the run.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, types.ErrFilesFailed)
}

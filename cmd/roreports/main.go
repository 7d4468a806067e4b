package main

import (
	"context"
	"os"

	"github.com/diillson/roreports-go/internal/adapter/driven/aws"
	"github.com/diillson/roreports-go/internal/adapter/driven/config"
	"github.com/diillson/roreports-go/internal/adapter/driven/csvsource"
	"github.com/diillson/roreports-go/internal/adapter/driven/export"
	"github.com/diillson/roreports-go/internal/adapter/driven/filesystem"
	"github.com/diillson/roreports-go/internal/adapter/driving/cli"
	"github.com/diillson/roreports-go/internal/application/usecase"
	"github.com/diillson/roreports-go/internal/domain/repository"
	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/diillson/roreports-go/pkg/console"
	"github.com/diillson/roreports-go/pkg/logger"
	"github.com/diillson/roreports-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	consoleImpl := console.NewConsole()
	app := cli.NewCLIApp(version.Version, consoleImpl)

	app.SetConfigLoader(config.NewConfigRepository())
	app.SetBatchRunner(func(ctx context.Context, cfg *types.Config) error {
		return runBatch(ctx, cfg, consoleImpl)
	})

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		if usecase.IsFatal(err) {
			consoleImpl.Summary(false, "Critical error: %v", err)
		} else {
			consoleImpl.Summary(false, "%v", err)
		}
		os.Exit(1)
	}
}

// runBatch inicializa os repositórios e executa o caso de uso.
func runBatch(ctx context.Context, cfg *types.Config, consoleImpl types.ConsoleInterface) error {
	log, err := logger.NewLogger(cfg.LogPath(), cfg.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	csvRepo := csvsource.NewCSVRepository(cfg)
	workspaceRepo := filesystem.NewWorkspaceRepository(cfg)
	exportRepo := export.NewExportRepository(cfg.DelimiterRune())

	var uploadRepo repository.UploadRepository
	if cfg.Upload.Enabled() {
		uploadRepo = aws.NewUploadRepository(cfg.Upload)
	}

	reportUseCase := usecase.NewReportUseCase(
		cfg,
		csvRepo,
		csvRepo,
		workspaceRepo,
		exportRepo,
		uploadRepo,
		consoleImpl,
		log,
	)

	_, err = reportUseCase.RunBatch(ctx)
	return err
}

package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/diillson/roreports-go/pkg/version"
	"github.com/spf13/cobra"
)

// BatchRunner builds and runs the batch for a resolved configuration.
type BatchRunner func(ctx context.Context, cfg *types.Config) error

// ConfigLoader resolves the run configuration from the parsed arguments.
type ConfigLoader interface {
	Load(args *types.CLIArgs) (*types.Config, error)
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd      *cobra.Command
	configLoader ConfigLoader
	runner       BatchRunner
	console      types.ConsoleInterface
	checker      *version.Checker
	version      string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		console: console,
		checker: version.NewChecker(version.ReleasesURL, nil),
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "roreports",
		Short:         "Merge RO export files with the reference tables into sorted reports",
		Version:       formattedVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "roreports version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("base-dir", "b", "", "Base directory holding dict/, in/, reports/ and arch/ (default: executable directory)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Extra report renditions besides csv: xlsx, pdf, json")
	rootCmd.PersistentFlags().StringP("encoding", "e", "", "Encoding of the input files: utf-8, windows-1251, koi8-r, utf-16")
	rootCmd.PersistentFlags().StringP("log-file", "l", "", "Write a structured run log to this file")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Mirror generated reports to this S3 bucket")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report every input row dropped by the join")
	rootCmd.PersistentFlags().Bool("strict", false, "Exit with an error when any input file fails")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Join and count records without writing reports or archiving")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the welcome banner")
	rootCmd.PersistentFlags().Bool("check-update", false, "Check GitHub for a newer release before running")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs replaces os.Args[1:] for the root command.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	baseDir, _ := flags.GetString("base-dir")
	reportTypes, _ := flags.GetStringSlice("report-type")
	encoding, _ := flags.GetString("encoding")
	logFile, _ := flags.GetString("log-file")
	bucket, _ := flags.GetString("s3-bucket")
	verbose, _ := flags.GetBool("verbose")
	strict, _ := flags.GetBool("strict")
	dryRun, _ := flags.GetBool("dry-run")
	noBanner, _ := flags.GetBool("no-banner")

	if baseDir != "" {
		// Convert to absolute path
		absDir, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, err
		}
		baseDir = absDir
	}

	for i, t := range reportTypes {
		reportTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}

	args := &types.CLIArgs{
		ConfigFile:   configFile,
		BaseDir:      baseDir,
		ReportTypes:  reportTypes,
		Encoding:     encoding,
		LogFile:      logFile,
		UploadBucket: bucket,
		Verbose:      verbose,
		Strict:       strict,
		DryRun:       dryRun,
		NoBanner:     noBanner,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	if !cliArgs.NoBanner {
		displayWelcomeBanner(app.version)
	}

	if check, _ := cmd.Flags().GetBool("check-update"); check {
		app.checkUpdate(cmd.Context())
	}

	cfg, err := app.configLoader.Load(cliArgs)
	if err != nil {
		return err
	}

	return app.runner(cmd.Context(), cfg)
}

// checkUpdate avisa quando há uma release mais nova. Falhas na consulta não interrompem a execução.
func (app *CLIApp) checkUpdate(ctx context.Context) {
	rel, err := app.checker.Check(ctx, app.version)
	if err != nil {
		app.console.LogInfo("Update check skipped: %v", err)
		return
	}
	if rel.Newer {
		app.console.LogWarning("A new version of roreports is available: %s (current: %s)", rel.Latest, rel.Current)
		app.console.LogInfo("Please update using: go install github.com/diillson/roreports-go/cmd/roreports@latest")
	}
}

// SetUpdateChecker replaces the release checker used by --check-update.
func (app *CLIApp) SetUpdateChecker(checker *version.Checker) {
	app.checker = checker
}

// SetConfigLoader sets the configuration loader for the CLI app.
func (app *CLIApp) SetConfigLoader(loader ConfigLoader) {
	app.configLoader = loader
}

// SetBatchRunner sets the function that runs the batch once the config is resolved.
func (app *CLIApp) SetBatchRunner(runner BatchRunner) {
	app.runner = runner
}

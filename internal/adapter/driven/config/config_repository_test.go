package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, exeDir string) *ConfigRepositoryImpl {
	t.Helper()
	return &ConfigRepositoryImpl{
		validate:      validator.New(),
		executableDir: func() (string, error) { return exeDir, nil },
		envFiles:      []string{filepath.Join(t.TempDir(), "missing.env")},
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	exeDir := t.TempDir()

	cfg, err := newTestRepository(t, exeDir).Load(&types.CLIArgs{})
	require.NoError(t, err)

	assert.Equal(t, exeDir, cfg.BaseDir)
	assert.Equal(t, filepath.Join(exeDir, "dict", "Сущности.csv"), cfg.EntitiesPath())
	assert.Equal(t, filepath.Join(exeDir, "dict", "Общебанк.csv"), cfg.BankPath())
	assert.Equal(t, filepath.Join(exeDir, "in"), cfg.InPath())
	assert.Equal(t, filepath.Join(exeDir, "reports"), cfg.ReportsPath())
	assert.Equal(t, filepath.Join(exeDir, "arch"), cfg.ArchPath())
	assert.Equal(t, "Выгрузка РО", cfg.InputPrefix)
	assert.Equal(t, "Выгрузка РО СПВиРС", cfg.ReportPrefix)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, []string{"csv"}, cfg.ReportTypes)
	assert.False(t, cfg.Upload.Enabled())
}

func TestLoadConfigFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "roreports.yaml",
			content: `
input_prefix: "RO export"
encoding: windows-1251
report_types: [csv, xlsx]
columns:
  bank_team: Команда
upload:
  bucket: reports
`,
		},
		{
			name: "toml",
			file: "roreports.toml",
			content: `
input_prefix = "RO export"
encoding = "windows-1251"
report_types = ["csv", "xlsx"]

[columns]
bank_team = "Команда"

[upload]
bucket = "reports"
`,
		},
		{
			name: "json",
			file: "roreports.json",
			content: `{
  "input_prefix": "RO export",
  "encoding": "windows-1251",
  "report_types": ["csv", "xlsx"],
  "columns": {"bank_team": "Команда"},
  "upload": {"bucket": "reports"}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			cfg := types.DefaultConfig("/base")

			require.NoError(t, newTestRepository(t, "/base").LoadConfigFile(path, cfg))

			assert.Equal(t, "RO export", cfg.InputPrefix)
			assert.Equal(t, "windows-1251", cfg.Encoding)
			assert.Equal(t, []string{"csv", "xlsx"}, cfg.ReportTypes)
			assert.Equal(t, "Команда", cfg.Columns.BankTeam)
			assert.Equal(t, "reports", cfg.Upload.Bucket)

			// untouched keys keep their defaults
			assert.Equal(t, "Выгрузка РО СПВиРС", cfg.ReportPrefix)
			assert.Equal(t, "entity ID", cfg.Columns.BankKey)
			assert.Equal(t, "/base", cfg.BaseDir)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := newTestRepository(t, "/base")
	cfg := types.DefaultConfig("/base")

	assert.Error(t, repo.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), cfg))
	assert.Error(t, repo.LoadConfigFile(t.TempDir(), cfg))
	assert.Error(t, repo.LoadConfigFile(writeConfig(t, "cfg.ini", "a=b"), cfg))
	assert.Error(t, repo.LoadConfigFile(writeConfig(t, "cfg.json", "{"), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	exeDir := t.TempDir()
	fileBase := t.TempDir()
	flagBase := t.TempDir()
	path := writeConfig(t, "roreports.yaml", "base_dir: "+fileBase+"\nreport_prefix: From file\ninput_prefix: From file\n")

	t.Setenv("ROREPORTS_INPUT_PREFIX", "From env")
	t.Setenv("ROREPORTS_VERBOSE", "true")
	t.Setenv("ROREPORTS_REPORT_TYPES", "CSV, pdf")

	cfg, err := newTestRepository(t, exeDir).Load(&types.CLIArgs{
		ConfigFile: path,
		BaseDir:    flagBase,
		Strict:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, flagBase, cfg.BaseDir)
	assert.Equal(t, "From file", cfg.ReportPrefix)
	assert.Equal(t, "From env", cfg.InputPrefix)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportTypes)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Strict)
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := writeConfig(t, ".env", "ROREPORTS_S3_BUCKET=from-dotenv\n")
	t.Setenv("ROREPORTS_S3_BUCKET", "")
	require.NoError(t, os.Unsetenv("ROREPORTS_S3_BUCKET"))

	repo := newTestRepository(t, t.TempDir())
	repo.envFiles = []string{envFile}

	cfg, err := repo.Load(&types.CLIArgs{})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Upload.Bucket)
}

func TestLoad_RelativeBaseDirBecomesAbsolute(t *testing.T) {
	cfg, err := newTestRepository(t, t.TempDir()).Load(&types.CLIArgs{BaseDir: "data"})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data"), cfg.BaseDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args *types.CLIArgs
		env  map[string]string
		file string
	}{
		{name: "unknown report type", args: &types.CLIArgs{ReportTypes: []string{"docx"}}},
		{name: "unknown encoding", args: &types.CLIArgs{Encoding: "latin-1"}},
		{name: "bad bool in env", args: &types.CLIArgs{}, env: map[string]string{"ROREPORTS_STRICT": "maybe"}},
		{name: "two-char delimiter", args: &types.CLIArgs{}, file: "delimiter: ';;'\n"},
		{name: "blank column name", args: &types.CLIArgs{}, file: "columns:\n  bank_name: ''\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				tt.args.ConfigFile = writeConfig(t, "cfg.yaml", tt.file)
			}

			_, err := newTestRepository(t, t.TempDir()).Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"csv", "xlsx"}, splitList(" CSV ,, xlsx,"))
	assert.Nil(t, splitList(""))
}

package types

import (
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	BaseDir    string `json:"base_dir" yaml:"base_dir" toml:"base_dir" validate:"required"`
	DictDir    string `json:"dict_dir" yaml:"dict_dir" toml:"dict_dir" validate:"required"`
	InDir      string `json:"in_dir" yaml:"in_dir" toml:"in_dir" validate:"required"`
	ReportsDir string `json:"reports_dir" yaml:"reports_dir" toml:"reports_dir" validate:"required"`
	ArchDir    string `json:"arch_dir" yaml:"arch_dir" toml:"arch_dir" validate:"required"`

	EntitiesFile string `json:"entities_file" yaml:"entities_file" toml:"entities_file" validate:"required"`
	BankFile     string `json:"bank_file" yaml:"bank_file" toml:"bank_file" validate:"required"`
	InputPrefix  string `json:"input_prefix" yaml:"input_prefix" toml:"input_prefix" validate:"required"`
	ReportPrefix string `json:"report_prefix" yaml:"report_prefix" toml:"report_prefix" validate:"required"`

	Delimiter   string   `json:"delimiter" yaml:"delimiter" toml:"delimiter" validate:"required,len=1"`
	Encoding    string   `json:"encoding" yaml:"encoding" toml:"encoding" validate:"oneof=utf-8 windows-1251 koi8-r utf-16"`
	ReportTypes []string `json:"report_types" yaml:"report_types" toml:"report_types" validate:"dive,oneof=csv xlsx pdf json"`

	Columns Columns `json:"columns" yaml:"columns" toml:"columns"`
	Upload  Upload  `json:"upload" yaml:"upload" toml:"upload"`

	Verbose bool   `json:"verbose" yaml:"verbose" toml:"verbose"`
	Strict  bool   `json:"strict" yaml:"strict" toml:"strict"`
	DryRun  bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	LogFile string `json:"log_file" yaml:"log_file" toml:"log_file"`
}

// Columns holds the header names looked up in each kind of CSV file.
type Columns struct {
	EntityType      string `json:"entity_type" yaml:"entity_type" toml:"entity_type" validate:"required"`
	EntitySubtype   string `json:"entity_subtype" yaml:"entity_subtype" toml:"entity_subtype" validate:"required"`
	EntityID        string `json:"entity_id" yaml:"entity_id" toml:"entity_id" validate:"required"`
	EntityShortName string `json:"entity_short_name" yaml:"entity_short_name" toml:"entity_short_name" validate:"required"`
	EntitySystem    string `json:"entity_system_code" yaml:"entity_system_code" toml:"entity_system_code" validate:"required"`

	TypeValue    string `json:"type_value" yaml:"type_value" toml:"type_value" validate:"required"`
	SubtypeValue string `json:"subtype_value" yaml:"subtype_value" toml:"subtype_value" validate:"required"`

	BankKey  string `json:"bank_key" yaml:"bank_key" toml:"bank_key" validate:"required"`
	BankName string `json:"bank_name" yaml:"bank_name" toml:"bank_name" validate:"required"`
	BankTeam string `json:"bank_team" yaml:"bank_team" toml:"bank_team" validate:"required"`

	InputSystem    string `json:"input_system_code" yaml:"input_system_code" toml:"input_system_code" validate:"required"`
	InputTotal     string `json:"input_total" yaml:"input_total" toml:"input_total" validate:"required"`
	InputDescribed string `json:"input_described" yaml:"input_described" toml:"input_described" validate:"required"`
}

// Upload configura o espelhamento opcional dos relatórios para o S3.
type Upload struct {
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket"`
	Prefix  string `json:"prefix" yaml:"prefix" toml:"prefix"`
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Region  string `json:"region" yaml:"region" toml:"region"`
}

// Enabled reports whether an upload bucket was configured.
func (u Upload) Enabled() bool {
	return u.Bucket != ""
}

// DefaultColumns returns the header names used when no config file overrides them.
func DefaultColumns() Columns {
	return Columns{
		EntityType:      "Type",
		EntitySubtype:   "Type-CS",
		EntityID:        "entity ID",
		EntityShortName: "short name",
		EntitySystem:    "system code",
		TypeValue:       "IT-system",
		SubtypeValue:    "Application",
		BankKey:         "entity ID",
		BankName:        "name",
		BankTeam:        "team",
		InputSystem:     "system code",
		InputTotal:      "total",
		InputDescribed:  "described",
	}
}

// DefaultConfig cria a configuração padrão relativa ao diretório base informado.
func DefaultConfig(baseDir string) *Config {
	return &Config{
		BaseDir:      baseDir,
		DictDir:      "dict",
		InDir:        "in",
		ReportsDir:   "reports",
		ArchDir:      "arch",
		EntitiesFile: "Сущности.csv",
		BankFile:     "Общебанк.csv",
		InputPrefix:  "Выгрузка РО",
		ReportPrefix: "Выгрузка РО СПВиРС",
		Delimiter:    ";",
		Encoding:     "utf-8",
		ReportTypes:  []string{"csv"},
		Columns:      DefaultColumns(),
	}
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.BaseDir, dir)
}

// DictPath returns the absolute reference directory.
func (c *Config) DictPath() string { return c.resolve(c.DictDir) }

// InPath returns the absolute incoming directory.
func (c *Config) InPath() string { return c.resolve(c.InDir) }

// ReportsPath returns the absolute reports directory.
func (c *Config) ReportsPath() string { return c.resolve(c.ReportsDir) }

// ArchPath returns the absolute archive directory.
func (c *Config) ArchPath() string { return c.resolve(c.ArchDir) }

// WorkDirs lists the four working directories in provisioning order.
func (c *Config) WorkDirs() []string {
	return []string{c.DictPath(), c.InPath(), c.ReportsPath(), c.ArchPath()}
}

// EntitiesPath returns the full path of the entities reference file.
func (c *Config) EntitiesPath() string { return filepath.Join(c.DictPath(), c.EntitiesFile) }

// BankPath returns the full path of the bank reference file.
func (c *Config) BankPath() string { return filepath.Join(c.DictPath(), c.BankFile) }

// LogPath returns the run log path, or "" when logging to file is disabled.
func (c *Config) LogPath() string {
	if c.LogFile == "" {
		return ""
	}
	return c.resolve(c.LogFile)
}

// DelimiterRune returns the field separator as a rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}

// HasReportType reports whether the given rendition was requested.
func (c *Config) HasReportType(kind string) bool {
	for _, t := range c.ReportTypes {
		if t == kind {
			return true
		}
	}
	return false
}

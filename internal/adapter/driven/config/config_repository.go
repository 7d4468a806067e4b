package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/roreports-go/internal/domain/repository"
	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// envPrefix é o prefixo das variáveis de ambiente reconhecidas.
const envPrefix = "ROREPORTS_"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
	// executableDir resolves the default base directory; replaced in tests.
	executableDir func() (string, error)
	envFiles      []string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{
		validate:      validator.New(),
		executableDir: executableDir,
	}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON sobre cfg.
// Campos ausentes no arquivo mantêm o valor já presente em cfg.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string, cfg *types.Config) error {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, cfg); err != nil {
			return fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return nil
}

// Load monta a configuração final: padrões, arquivo, ambiente e por fim as flags.
func (r *ConfigRepositoryImpl) Load(args *types.CLIArgs) (*types.Config, error) {
	if err := r.loadEnvFiles(); err != nil {
		return nil, err
	}

	baseDir, err := r.executableDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve executable directory: %w", err)
	}
	cfg := types.DefaultConfig(baseDir)

	if args.ConfigFile != "" {
		if err := r.LoadConfigFile(args.ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyArgs(cfg, args)

	if !filepath.IsAbs(cfg.BaseDir) {
		absDir, err := filepath.Abs(cfg.BaseDir)
		if err != nil {
			return nil, err
		}
		cfg.BaseDir = absDir
	}

	if err := r.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadEnvFiles carrega o .env quando existir; a ausência do arquivo não é erro.
func (r *ConfigRepositoryImpl) loadEnvFiles() error {
	if err := godotenv.Load(r.envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

func applyEnv(cfg *types.Config) error {
	strs := map[string]*string{
		"BASE_DIR":      &cfg.BaseDir,
		"DICT_DIR":      &cfg.DictDir,
		"IN_DIR":        &cfg.InDir,
		"REPORTS_DIR":   &cfg.ReportsDir,
		"ARCH_DIR":      &cfg.ArchDir,
		"ENTITIES_FILE": &cfg.EntitiesFile,
		"BANK_FILE":     &cfg.BankFile,
		"INPUT_PREFIX":  &cfg.InputPrefix,
		"REPORT_PREFIX": &cfg.ReportPrefix,
		"ENCODING":      &cfg.Encoding,
		"LOG_FILE":      &cfg.LogFile,
		"S3_BUCKET":     &cfg.Upload.Bucket,
		"S3_PREFIX":     &cfg.Upload.Prefix,
		"AWS_PROFILE":   &cfg.Upload.Profile,
		"AWS_REGION":    &cfg.Upload.Region,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"VERBOSE": &cfg.Verbose,
		"STRICT":  &cfg.Strict,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(envPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s%s: %w", envPrefix, key, err)
		}
		*dst = b
	}

	if v, ok := os.LookupEnv(envPrefix + "REPORT_TYPES"); ok {
		cfg.ReportTypes = splitList(v)
	}
	return nil
}

func applyArgs(cfg *types.Config, args *types.CLIArgs) {
	if args.BaseDir != "" {
		cfg.BaseDir = args.BaseDir
	}
	if len(args.ReportTypes) > 0 {
		cfg.ReportTypes = args.ReportTypes
	}
	if args.Encoding != "" {
		cfg.Encoding = args.Encoding
	}
	if args.LogFile != "" {
		cfg.LogFile = args.LogFile
	}
	if args.UploadBucket != "" {
		cfg.Upload.Bucket = args.UploadBucket
	}
	cfg.Verbose = cfg.Verbose || args.Verbose
	cfg.Strict = cfg.Strict || args.Strict
	cfg.DryRun = cfg.DryRun || args.DryRun
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// executableDir returns the directory holding the running binary.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

package repository

import (
	"github.com/diillson/roreports-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string, cfg *types.Config) error
	Load(args *types.CLIArgs) (*types.Config, error)
}

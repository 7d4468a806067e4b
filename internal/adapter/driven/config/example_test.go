package config

import (
	"path/filepath"
	"testing"

	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleConfigIsValid(t *testing.T) {
	path := filepath.Join("..", "..", "..", "..", "configs", "roreports.example.yaml")
	base := t.TempDir()

	cfg, err := newTestRepository(t, base).Load(&types.CLIArgs{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "Идентификационный код системы", cfg.Columns.EntitySystem)
	assert.Equal(t, "РИС код", cfg.Columns.InputSystem)
	assert.Equal(t, filepath.Join(base, "logs", "roreports.log"), cfg.LogPath())
}

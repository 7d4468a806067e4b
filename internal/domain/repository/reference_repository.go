package repository

import (
	"github.com/diillson/roreports-go/internal/domain/entity"
)

// ReferenceRepository loads the lookup tables used by the join.
type ReferenceRepository interface {
	LoadEntities(path string) (entity.EntityIndex, error)
	LoadBank(path string) (entity.BankIndex, error)
}

// InputRepository parses incoming report files.
type InputRepository interface {
	ReadInput(path string) ([]entity.InputRow, error)
}

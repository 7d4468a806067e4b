package csvsource

import (
	"github.com/diillson/roreports-go/internal/domain/entity"
	"github.com/diillson/roreports-go/internal/shared/types"
)

// CSVRepositoryImpl implementa ReferenceRepository e InputRepository sobre arquivos CSV.
type CSVRepositoryImpl struct {
	encoding  string
	delimiter rune
	columns   types.Columns
}

// NewCSVRepository cria o repositório a partir da configuração da execução.
func NewCSVRepository(cfg *types.Config) *CSVRepositoryImpl {
	return &CSVRepositoryImpl{
		encoding:  cfg.Encoding,
		delimiter: cfg.DelimiterRune(),
		columns:   cfg.Columns,
	}
}

// LoadEntities lê o arquivo de entidades e mantém apenas as linhas do tipo e subtipo configurados,
// indexadas pelo código do sistema. Se o código se repetir, a última linha vence.
func (r *CSVRepositoryImpl) LoadEntities(path string) (entity.EntityIndex, error) {
	t, err := readTable(path, r.encoding, r.delimiter)
	if err != nil {
		return nil, &types.ReferenceLoadError{Path: path, Err: err}
	}

	c := r.columns
	idx, err := t.columns(c.EntityType, c.EntitySubtype, c.EntityID, c.EntityShortName, c.EntitySystem)
	if err != nil {
		return nil, &types.ReferenceLoadError{Path: path, Err: err}
	}
	typeCol, subtypeCol, idCol, nameCol, codeCol := idx[0], idx[1], idx[2], idx[3], idx[4]

	entities := make(entity.EntityIndex)
	for _, row := range t.rows {
		if row[typeCol] != c.TypeValue || row[subtypeCol] != c.SubtypeValue {
			continue
		}
		rec := entity.EntityRecord{
			EntityID:   row[idCol],
			ShortName:  row[nameCol],
			SystemCode: row[codeCol],
		}
		entities[rec.SystemCode] = rec
	}
	return entities, nil
}

// LoadBank lê o arquivo "bank" indexado pelo ID da entidade.
func (r *CSVRepositoryImpl) LoadBank(path string) (entity.BankIndex, error) {
	t, err := readTable(path, r.encoding, r.delimiter)
	if err != nil {
		return nil, &types.ReferenceLoadError{Path: path, Err: err}
	}

	c := r.columns
	idx, err := t.columns(c.BankKey, c.BankName, c.BankTeam)
	if err != nil {
		return nil, &types.ReferenceLoadError{Path: path, Err: err}
	}
	keyCol, nameCol, teamCol := idx[0], idx[1], idx[2]

	bank := make(entity.BankIndex, len(t.rows))
	for _, row := range t.rows {
		bank[row[keyCol]] = entity.BankRecord{
			EntityID: row[keyCol],
			Name:     row[nameCol],
			Team:     row[teamCol],
			Row:      t.record(row),
		}
	}
	return bank, nil
}

// ReadInput parses an incoming report file.
func (r *CSVRepositoryImpl) ReadInput(path string) ([]entity.InputRow, error) {
	t, err := readTable(path, r.encoding, r.delimiter)
	if err != nil {
		return nil, err
	}

	c := r.columns
	idx, err := t.columns(c.InputSystem, c.InputTotal, c.InputDescribed)
	if err != nil {
		return nil, err
	}
	codeCol, totalCol, describedCol := idx[0], idx[1], idx[2]

	rows := make([]entity.InputRow, 0, len(t.rows))
	for i, row := range t.rows {
		rows = append(rows, entity.InputRow{
			Line:       t.lines[i],
			SystemCode: row[codeCol],
			Total:      row[totalCol],
			Described:  row[describedCol],
		})
	}
	return rows, nil
}

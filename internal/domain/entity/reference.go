package entity

// EntityRecord representa uma linha filtrada do arquivo de entidades (IT-system / Application).
type EntityRecord struct {
	EntityID   string `json:"entity_id"`
	ShortName  string `json:"short_name"`
	SystemCode string `json:"system_code"`
}

// BankRecord holds organizational metadata for an entity, keyed by entity ID.
// Row keeps every column of the source line for pass-through.
type BankRecord struct {
	EntityID string            `json:"entity_id"`
	Name     string            `json:"name"`
	Team     string            `json:"team"`
	Row      map[string]string `json:"row"`
}

// EntityIndex maps a system code to its entity.
type EntityIndex map[string]EntityRecord

// BankIndex maps an entity ID to its bank record.
type BankIndex map[string]BankRecord

// References agrupa os dois mapeamentos carregados uma vez por execução.
type References struct {
	Entities EntityIndex
	Bank     BankIndex
}

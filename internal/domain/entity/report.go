package entity

// InputRow is one line of an incoming report file.
type InputRow struct {
	Line       int    `json:"line"`
	SystemCode string `json:"system_code"`
	Total      string `json:"total"`
	Described  string `json:"described"`
}

// ReportRow is a joined output record. It exists only when the system code
// resolved to an entity and the entity ID resolved to a bank record.
type ReportRow struct {
	EntityID   string `json:"entity_id"`
	SystemCode string `json:"system_code"`
	Name       string `json:"name"`
	Team       string `json:"team"`
	Total      string `json:"total"`
	Described  string `json:"described"`
}

// Record returns the row in report column order.
func (r ReportRow) Record() []string {
	return []string{r.EntityID, r.SystemCode, r.Name, r.Team, r.Total, r.Described}
}

// ReportHeader is the fixed header of every generated report.
var ReportHeader = []string{"entity ID", "system code", "name", "team", "total", "described"}

// DroppedRow descreve uma linha de entrada descartada pelo join (usado apenas em modo verbose).
type DroppedRow struct {
	Line       int    `json:"line"`
	SystemCode string `json:"system_code"`
	Reason     string `json:"reason"`
}

// Report is the outcome of joining one input file.
type Report struct {
	SourceName string       `json:"source_name"`
	DateToken  string       `json:"date_token"`
	Rows       []ReportRow  `json:"rows"`
	Dropped    []DroppedRow `json:"dropped,omitempty"`
}

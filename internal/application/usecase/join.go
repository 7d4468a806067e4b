package usecase

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diillson/roreports-go/internal/domain/entity"
)

// Drop reasons reported in verbose mode.
const (
	reasonEmptyCode     = "empty system code"
	reasonUnknownSystem = "system code not found in entities"
	reasonUnknownEntity = "entity ID not found in bank"
)

// JoinRows resolve cada linha de entrada: código do sistema -> entidade -> registro do bank.
// Linhas que não resolvem nas duas etapas são descartadas (inner join estrito).
func JoinRows(rows []entity.InputRow, refs entity.References) ([]entity.ReportRow, []entity.DroppedRow) {
	var (
		joined  []entity.ReportRow
		dropped []entity.DroppedRow
	)

	for _, row := range rows {
		if row.SystemCode == "" {
			dropped = append(dropped, entity.DroppedRow{Line: row.Line, Reason: reasonEmptyCode})
			continue
		}

		ent, ok := refs.Entities[row.SystemCode]
		if !ok {
			dropped = append(dropped, entity.DroppedRow{Line: row.Line, SystemCode: row.SystemCode, Reason: reasonUnknownSystem})
			continue
		}

		bank, ok := refs.Bank[ent.EntityID]
		if !ok {
			dropped = append(dropped, entity.DroppedRow{Line: row.Line, SystemCode: row.SystemCode, Reason: reasonUnknownEntity})
			continue
		}

		joined = append(joined, entity.ReportRow{
			EntityID:   ent.EntityID,
			SystemCode: row.SystemCode,
			Name:       bank.Name,
			Team:       bank.Team,
			Total:      row.Total,
			Described:  row.Described,
		})
	}

	return joined, dropped
}

// SortReportRows ordena por (team, entity ID), comparação de strings, mantendo a ordem em empates.
func SortReportRows(rows []entity.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].EntityID < rows[j].EntityID
	})
}

// DateToken returns the last whitespace-separated segment of the file name
// without its extension: "Report RO 2024-05-01.csv" gives "2024-05-01".
func DateToken(fileName string) (string, error) {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fields := strings.Fields(stem)
	if len(fields) == 0 {
		return "", fmt.Errorf("cannot extract date from file name %q", fileName)
	}
	return fields[len(fields)-1], nil
}

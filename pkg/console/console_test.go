package console

import (
	"testing"

	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

var _ types.ConsoleInterface = (*Console)(nil)

func TestTableRender(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	table := NewConsole().CreateTable()
	table.AddColumn("File")
	table.AddColumn("Records")
	table.AddRow("Выгрузка РО 2024-05-01.csv", 12)

	out := table.Render()
	assert.Contains(t, out, "File")
	assert.Contains(t, out, "Records")
	assert.Contains(t, out, "Выгрузка РО 2024-05-01.csv")
	assert.Contains(t, out, "12")
}

func TestStatusHandle_NilSpinner(t *testing.T) {
	h := &statusHandle{}
	assert.NotPanics(t, func() {
		h.Update("x")
		h.Stop()
	})
}

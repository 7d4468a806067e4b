package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SumCounts adds up the total and described columns of rows. Values that are
// not numbers are skipped; they still pass through to the report unchanged.
func SumCounts(rows []ReportRow) (total, described decimal.Decimal) {
	for _, r := range rows {
		if v, err := decimal.NewFromString(strings.TrimSpace(r.Total)); err == nil {
			total = total.Add(v)
		}
		if v, err := decimal.NewFromString(strings.TrimSpace(r.Described)); err == nil {
			described = described.Add(v)
		}
	}
	return total, described
}

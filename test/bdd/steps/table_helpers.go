package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
)

// cellValue looks a cell up by its header name; empty when the column is absent
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func cellInt(table *godog.Table, row *messages.PickleTableRow, column string) (int, error) {
	raw := cellValue(table, row, column)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid integer %q", column, raw)
	}
	return value, nil
}

func cellFloat(table *godog.Table, row *messages.PickleTableRow, column string) (float64, error) {
	raw := cellValue(table, row, column)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid number %q", column, raw)
	}
	return value, nil
}

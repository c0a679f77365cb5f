package repository

import (
	"fmt"
	"strings"
)

// assignments collects SET clauses for a partial update. Columns are
// repository-owned metadata, never caller input; values always travel as
// query parameters.
type assignments struct {
	columns []string
	args    []any
}

func (a *assignments) set(column string, value any) {
	a.columns = append(a.columns, column)
	a.args = append(a.args, value)
}

func (a *assignments) empty() bool { return len(a.columns) == 0 }

// buildUpdate renders a parameterized UPDATE for the collected
// assignments, keyed by idColumn, appending a RETURNING clause.
func buildUpdate(table string, a *assignments, idColumn string, id any, returning string) (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	for i, col := range a.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s = $%d", col, i+1))
	}
	sb.WriteString(fmt.Sprintf(" WHERE %s = $%d", idColumn, len(a.columns)+1))
	sb.WriteString(" RETURNING ")
	sb.WriteString(returning)

	args := append(append([]any{}, a.args...), id)
	return sb.String(), args
}

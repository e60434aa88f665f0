package study

import (
	"github.com/shopspring/decimal"

	"github.com/quantbench/election-study/internal/types"
)

// AddChanges appends one derived percentage-change column per instrument
// prefix: (1 month after - 1 month before) / 1 month before * 100. An
// absent operand, or a zero "before" close, leaves the derived cell as the
// no-value marker; undefined results propagate, they never raise.
func AddChanges(t types.Table, prefixes []string) types.Table {
	columns := make([]string, 0, len(t.Columns)+len(prefixes))
	columns = append(columns, t.Columns...)

	for _, prefix := range prefixes {
		columns = append(columns, ChangeColumn(prefix))
	}

	rows := make([]types.Row, 0, len(t.Rows))

	for _, row := range t.Rows {
		cells := make(map[string]types.Cell, len(columns))
		for name, cell := range row.Cells {
			cells[name] = cell
		}

		for _, prefix := range prefixes {
			before := row.Cells[ColumnName(prefix, OneMonthBefore)]
			after := row.Cells[ColumnName(prefix, OneMonthAfter)]
			cells[ChangeColumn(prefix)] = percentChange(before, after)
		}

		rows = append(rows, types.Row{Year: row.Year, Cells: cells})
	}

	return types.Table{
		Columns: columns,
		Rows:    rows,
	}
}

// percentChange computes (after - before) / before * 100 in decimal
// arithmetic so e.g. 100 -> 110 yields exactly 10.
func percentChange(before, after types.Cell) types.Cell {
	if before.IsNone() || after.IsNone() {
		return types.NoValue()
	}

	b := decimal.NewFromFloat(before.Unwrap())
	if b.IsZero() {
		return types.NoValue()
	}

	a := decimal.NewFromFloat(after.Unwrap())
	change, _ := a.Sub(b).Div(b).Mul(decimal.NewFromInt(100)).Float64()

	return types.SomeCell(change)
}

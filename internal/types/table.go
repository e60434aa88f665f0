package types

import (
	"github.com/moznion/go-optional"
)

// Cell is a single table value: a closing price, or the explicit no-value
// marker for a lookup that could not be satisfied.
type Cell = optional.Option[float64]

// SomeCell wraps a resolved closing price.
func SomeCell(v float64) Cell {
	return optional.Some(v)
}

// NoValue is the marker for an unresolved or missing lookup.
func NoValue() Cell {
	return optional.None[float64]()
}

// Row holds every column value for one election year. The cell map carries
// the same key set on every row of a table; unresolved lookups are stored as
// the no-value marker, never as a missing key.
type Row struct {
	Year  int
	Cells map[string]Cell
}

// Table is the assembled study result: one row per election year, with a
// fixed column order shared by every report artifact.
type Table struct {
	Columns []string
	Rows    []Row
}

// Column collects the named column's cells in row order.
func (t Table) Column(name string) []Cell {
	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row.Cells[name])
	}

	return cells
}

// Years collects the year of every row in row order.
func (t Table) Years() []int {
	years := make([]int, 0, len(t.Rows))
	for _, row := range t.Rows {
		years = append(years, row.Year)
	}

	return years
}

// UnresolvedCells counts the cells carrying the no-value marker.
func (t Table) UnresolvedCells() int {
	count := 0

	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if row.Cells[col].IsNone() {
				count++
			}
		}
	}

	return count
}

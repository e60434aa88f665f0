package study

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/quantbench/election-study/internal/logger"
	"github.com/quantbench/election-study/internal/types"
)

// MovementCalculator assembles the result table: one row per election year,
// one column per (instrument, offset) pair.
type MovementCalculator struct {
	logger *logger.Logger
}

// NewMovementCalculator creates a movement calculator.
func NewMovementCalculator(log *logger.Logger) *MovementCalculator {
	return &MovementCalculator{
		logger: log,
	}
}

// Build resolves every (year, offset, instrument) cell. A failed trading-day
// lookup or a missing close poisons only its own cell, which is stored as
// the no-value marker and logged as a warning; every other cell proceeds.
func (m *MovementCalculator) Build(electionDates map[int]time.Time, series []types.Series) types.Table {
	years := make([]int, 0, len(electionDates))
	for year := range electionDates {
		years = append(years, year)
	}

	sort.Ints(years)

	columns := make([]string, 0, len(series)*len(OffsetOrder))

	for _, s := range series {
		for _, label := range OffsetOrder {
			columns = append(columns, ColumnName(ColumnPrefix(s.Symbol), label))
		}
	}

	rows := make([]types.Row, 0, len(years))

	for _, year := range years {
		relative := RelativeDates(electionDates[year])
		row := types.Row{
			Year:  year,
			Cells: make(map[string]types.Cell, len(columns)),
		}

		for _, s := range series {
			prefix := ColumnPrefix(s.Symbol)

			for _, label := range OffsetOrder {
				row.Cells[ColumnName(prefix, label)] = m.resolveCell(s, year, label, relative[label])
			}
		}

		rows = append(rows, row)
	}

	return types.Table{
		Columns: columns,
		Rows:    rows,
	}
}

// resolveCell looks up one closing price, degrading to the no-value marker
// on any failure.
func (m *MovementCalculator) resolveCell(s types.Series, year int, label string, target time.Time) types.Cell {
	bar, err := LatestOnOrBefore(s, target)
	if err != nil {
		m.logger.Warn("data unavailable, recording cell as no value",
			zap.String("ticker", s.Symbol),
			zap.Int("year", year),
			zap.String("offset", label),
			zap.String("target", target.Format("2006-01-02")),
			zap.Error(err),
		)

		return types.NoValue()
	}

	if math.IsNaN(bar.Close) {
		m.logger.Warn("close missing for resolved trading day, recording cell as no value",
			zap.String("ticker", s.Symbol),
			zap.Int("year", year),
			zap.String("offset", label),
			zap.String("trading_day", bar.Time.Format("2006-01-02")),
		)

		return types.NoValue()
	}

	return types.SomeCell(bar.Close)
}

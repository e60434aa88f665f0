package study

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantbench/election-study/internal/types"
)

type CorrelationTestSuite struct {
	suite.Suite
}

func TestCorrelationSuite(t *testing.T) {
	suite.Run(t, new(CorrelationTestSuite))
}

func corrTable(a, b, c []types.Cell) types.Table {
	rows := make([]types.Row, len(a))
	for i := range a {
		rows[i] = types.Row{
			Year: 2000 + 4*i,
			Cells: map[string]types.Cell{
				"a": a[i],
				"b": b[i],
				"c": c[i],
			},
		}
	}

	return types.Table{Columns: []string{"a", "b", "c"}, Rows: rows}
}

func cells(vals ...float64) []types.Cell {
	out := make([]types.Cell, len(vals))
	for i, v := range vals {
		out[i] = types.SomeCell(v)
	}

	return out
}

func (suite *CorrelationTestSuite) TestPerfectCorrelation() {
	labels, matrix := CorrelationMatrix(corrTable(
		cells(1, 2, 3),
		cells(2, 4, 6),
		cells(3, 2, 1),
	))

	suite.Equal([]string{"a", "b", "c"}, labels)
	suite.InDelta(1.0, matrix[0][0], 1e-12)
	suite.InDelta(1.0, matrix[0][1], 1e-12)
	suite.InDelta(-1.0, matrix[0][2], 1e-12)
	suite.Equal(matrix[0][1], matrix[1][0])
}

func (suite *CorrelationTestSuite) TestPairwiseCompleteObservations() {
	// The no-value row is excluded only from pairs that touch it.
	a := cells(1, 2, 3)
	b := []types.Cell{types.SomeCell(2), types.NoValue(), types.SomeCell(6)}
	c := cells(3, 2, 1)

	_, matrix := CorrelationMatrix(corrTable(a, b, c))

	// a-b correlates over rows 0 and 2 only, still perfectly linear.
	suite.InDelta(1.0, matrix[0][1], 1e-12)
	// a-c uses all three rows.
	suite.InDelta(-1.0, matrix[0][2], 1e-12)
}

func (suite *CorrelationTestSuite) TestInsufficientObservations() {
	a := cells(1, 2, 3)
	b := []types.Cell{types.SomeCell(2), types.NoValue(), types.NoValue()}
	c := cells(3, 2, 1)

	_, matrix := CorrelationMatrix(corrTable(a, b, c))

	suite.True(math.IsNaN(matrix[0][1]))
	suite.True(math.IsNaN(matrix[1][2]))
	// The diagonal is 1 by definition even for sparse columns.
	suite.Equal(1.0, matrix[1][1])
}

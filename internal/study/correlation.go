package study

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quantbench/election-study/internal/types"
)

// CorrelationMatrix computes pairwise Pearson correlation across every
// numeric column of the table (the year key is not a column). Each pair is
// correlated over its complete observations only: rows where either cell is
// the no-value marker are skipped for that pair. Pairs with fewer than two
// complete observations yield NaN.
func CorrelationMatrix(t types.Table) ([]string, [][]float64) {
	n := len(t.Columns)
	matrix := make([][]float64, n)

	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	columns := make([][]types.Cell, n)
	for i, name := range t.Columns {
		columns[i] = t.Column(name)
	}

	for i := 0; i < n; i++ {
		matrix[i][i] = 1

		for j := i + 1; j < n; j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return t.Columns, matrix
}

func pairwiseCorrelation(a, b []types.Cell) float64 {
	var xs, ys []float64

	for k := range a {
		if a[k].IsNone() || b[k].IsNone() {
			continue
		}

		xs = append(xs, a[k].Unwrap())
		ys = append(ys, b[k].Unwrap())
	}

	if len(xs) < 2 {
		return math.NaN()
	}

	return stat.Correlation(xs, ys, nil)
}

package study

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/quantbench/election-study/internal/types"
)

type ChangesTestSuite struct {
	suite.Suite
}

func TestChangesSuite(t *testing.T) {
	suite.Run(t, new(ChangesTestSuite))
}

func tableWith(before, after types.Cell) types.Table {
	return types.Table{
		Columns: []string{"SPY_1_month_before", "SPY_1_month_after"},
		Rows: []types.Row{
			{
				Year: 2020,
				Cells: map[string]types.Cell{
					"SPY_1_month_before": before,
					"SPY_1_month_after":  after,
				},
			},
		},
	}
}

func (suite *ChangesTestSuite) TestPercentChange() {
	t := AddChanges(tableWith(types.SomeCell(100), types.SomeCell(110)), []string{"SPY"})

	suite.Equal([]string{"SPY_1_month_before", "SPY_1_month_after", "SPY_change"}, t.Columns)
	suite.Equal(10.0, t.Rows[0].Cells["SPY_change"].Unwrap())
}

func (suite *ChangesTestSuite) TestNegativeChange() {
	t := AddChanges(tableWith(types.SomeCell(200), types.SomeCell(150)), []string{"SPY"})

	suite.Equal(-25.0, t.Rows[0].Cells["SPY_change"].Unwrap())
}

func (suite *ChangesTestSuite) TestNoValuePropagates() {
	tests := []struct {
		name   string
		before types.Cell
		after  types.Cell
	}{
		{"before missing", types.NoValue(), types.SomeCell(110)},
		{"after missing", types.SomeCell(100), types.NoValue()},
		{"both missing", types.NoValue(), types.NoValue()},
		{"zero denominator", types.SomeCell(0), types.SomeCell(110)},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			t := AddChanges(tableWith(tc.before, tc.after), []string{"SPY"})
			suite.True(t.Rows[0].Cells["SPY_change"].IsNone())
		})
	}
}

func (suite *ChangesTestSuite) TestOriginalColumnsUntouched() {
	t := AddChanges(tableWith(types.SomeCell(100), types.SomeCell(110)), []string{"SPY"})

	suite.Equal(100.0, t.Rows[0].Cells["SPY_1_month_before"].Unwrap())
	suite.Equal(110.0, t.Rows[0].Cells["SPY_1_month_after"].Unwrap())
}

func (suite *ChangesTestSuite) TestMultipleInstruments() {
	table := types.Table{
		Columns: []string{
			"VIX_1_month_before", "VIX_1_month_after",
			"SPY_1_month_before", "SPY_1_month_after",
		},
		Rows: []types.Row{
			{
				Year: 2020,
				Cells: map[string]types.Cell{
					"VIX_1_month_before": types.SomeCell(40),
					"VIX_1_month_after":  types.SomeCell(20),
					"SPY_1_month_before": types.SomeCell(100),
					"SPY_1_month_after":  types.SomeCell(110),
				},
			},
		},
	}

	t := AddChanges(table, []string{"VIX", "SPY"})

	suite.Equal(-50.0, t.Rows[0].Cells["VIX_change"].Unwrap())
	suite.Equal(10.0, t.Rows[0].Cells["SPY_change"].Unwrap())
}

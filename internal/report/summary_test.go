package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SummaryTestSuite struct {
	suite.Suite
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummaryTestSuite))
}

func (suite *SummaryTestSuite) TestWriteSummary() {
	path := filepath.Join(suite.T().TempDir(), "run_summary.yaml")

	in := RunSummary{
		RunID:       "8b7f6a1e-0000-4000-8000-000000000000",
		GeneratedAt: time.Date(2021, 1, 2, 12, 0, 0, 0, time.UTC),
		Years:       []int{2000, 2004, 2008, 2012, 2016, 2020},
		Tickers: []TickerSummary{
			{Symbol: "^VIX", Bars: 5285, FirstDay: "2000-01-03", LastDay: "2020-12-31"},
			{Symbol: "SPY", Bars: 5285, FirstDay: "2000-01-03", LastDay: "2020-12-31"},
		},
		UnresolvedCells: 0,
	}

	suite.Require().NoError(WriteSummary(path, in))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var out RunSummary
	suite.Require().NoError(yaml.Unmarshal(data, &out))
	suite.Equal(in.RunID, out.RunID)
	suite.True(in.GeneratedAt.Equal(out.GeneratedAt))
	suite.Equal(in.Years, out.Years)
	suite.Equal(in.Tickers, out.Tickers)
	suite.Equal(in.UnresolvedCells, out.UnresolvedCells)
}

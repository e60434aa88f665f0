package study

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantbench/election-study/internal/logger"
	"github.com/quantbench/election-study/internal/report"
	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// Output artifact filenames, written into the configured output directory.
const (
	MovementsFileName   = "election_price_movements.csv"
	WithChangesFileName = "election_price_movements_with_changes.csv"
	PriceLinesFileName  = "price_lines.png"
	BarsFileName        = "vix_bars.png"
	HeatmapFileName     = "correlation_heatmap.png"
	SummaryFileName     = "run_summary.yaml"
)

// Fetcher retrieves a daily price series for a ticker. Start is inclusive,
// end exclusive.
type Fetcher interface {
	FetchDaily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error)
}

// Study runs the full pipeline: fetch both series, assemble the movement
// table, derive changes, and write every report artifact.
type Study struct {
	config  Config
	fetcher Fetcher
	logger  *logger.Logger
}

// New creates a study over a validated configuration.
func New(config Config, fetcher Fetcher, log *logger.Logger) (*Study, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Study{
		config:  config,
		fetcher: fetcher,
		logger:  log,
	}, nil
}

// Run executes the pipeline. An empty or failed fetch for either ticker is
// fatal and aborts before any table or chart artifact is produced; per-cell
// lookup failures only degrade their own cell.
func (s *Study) Run(ctx context.Context) error {
	vix, err := s.fetchChecked(ctx, s.config.VolatilityTicker)
	if err != nil {
		return err
	}

	spy, err := s.fetchChecked(ctx, s.config.EquityTicker)
	if err != nil {
		return err
	}

	series := []types.Series{vix, spy}

	table := NewMovementCalculator(s.logger).Build(s.config.ElectionDates, series)

	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", s.config.OutputDir)
	}

	if err := report.WriteTableCSV(s.outputPath(MovementsFileName), table); err != nil {
		return err
	}

	s.logger.Info("wrote movement table", zap.String("file", MovementsFileName), zap.Int("rows", len(table.Rows)))

	vixPrefix := ColumnPrefix(s.config.VolatilityTicker)
	spyPrefix := ColumnPrefix(s.config.EquityTicker)

	table = AddChanges(table, []string{vixPrefix, spyPrefix})

	if err := report.WriteTableCSV(s.outputPath(WithChangesFileName), table); err != nil {
		return err
	}

	s.logger.Info("wrote movement table with derived changes", zap.String("file", WithChangesFileName))

	if err := s.renderCharts(table, vixPrefix, spyPrefix); err != nil {
		return err
	}

	summary := report.RunSummary{
		RunID:           uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		Years:           table.Years(),
		Tickers:         tickerSummaries(series),
		UnresolvedCells: table.UnresolvedCells(),
	}
	if err := report.WriteSummary(s.outputPath(SummaryFileName), summary); err != nil {
		return err
	}

	s.logger.Info("study complete",
		zap.String("run_id", summary.RunID),
		zap.Int("unresolved_cells", summary.UnresolvedCells),
	)

	return nil
}

// fetchChecked fetches one ticker and applies the dataset-level policy: a
// fetch error or an empty series halts the run.
func (s *Study) fetchChecked(ctx context.Context, ticker string) (types.Series, error) {
	s.logger.Info("downloading daily bars",
		zap.String("ticker", ticker),
		zap.String("start", s.config.StartDate.Format("2006-01-02")),
		zap.String("end", s.config.EndDate.Format("2006-01-02")),
	)

	series, err := s.fetcher.FetchDaily(ctx, ticker, s.config.StartDate, s.config.EndDate)
	if err != nil {
		s.logger.Error("failed to download daily bars", zap.String("ticker", ticker), zap.Error(err))

		return types.Series{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch %s", ticker)
	}

	if series.Empty() {
		s.logger.Error("no data returned, aborting before any output is written", zap.String("ticker", ticker))

		return types.Series{}, errors.Newf(errors.ErrCodeEmptySeries, "no daily bars returned for %s", ticker)
	}

	s.logger.Info("downloaded daily bars",
		zap.String("ticker", ticker),
		zap.Int("bars", len(series.Bars)),
		zap.String("first", series.First().Time.Format("2006-01-02")),
		zap.String("last", series.Last().Time.Format("2006-01-02")),
	)

	return series, nil
}

func (s *Study) renderCharts(table types.Table, vixPrefix, spyPrefix string) error {
	lines := []report.LineSeries{
		{Column: ColumnName(vixPrefix, OneMonthBefore), Label: vixPrefix + " 1 month before"},
		{Column: ColumnName(vixPrefix, OneMonthAfter), Label: vixPrefix + " 1 month after"},
		{Column: ColumnName(spyPrefix, OneMonthBefore), Label: spyPrefix + " 1 month before"},
		{Column: ColumnName(spyPrefix, OneMonthAfter), Label: spyPrefix + " 1 month after"},
	}
	if err := report.RenderPriceLines(s.outputPath(PriceLinesFileName), table, lines); err != nil {
		return err
	}

	err := report.RenderGroupedBars(
		s.outputPath(BarsFileName),
		table,
		vixPrefix+" two months before vs after elections",
		ColumnName(vixPrefix, TwoMonthsBefore), "2 months before",
		ColumnName(vixPrefix, TwoMonthsAfter), "2 months after",
	)
	if err != nil {
		return err
	}

	labels, matrix := CorrelationMatrix(table)
	if err := report.RenderCorrelationHeatmap(s.outputPath(HeatmapFileName), labels, matrix); err != nil {
		return err
	}

	s.logger.Info("rendered charts",
		zap.Strings("files", []string{PriceLinesFileName, BarsFileName, HeatmapFileName}),
	)

	return nil
}

func (s *Study) outputPath(name string) string {
	return filepath.Join(s.config.OutputDir, name)
}

func tickerSummaries(series []types.Series) []report.TickerSummary {
	summaries := make([]report.TickerSummary, 0, len(series))
	for _, s := range series {
		summaries = append(summaries, report.TickerSummary{
			Symbol:   s.Symbol,
			Bars:     len(s.Bars),
			FirstDay: s.First().Time.Format("2006-01-02"),
			LastDay:  s.Last().Time.Format("2006-01-02"),
		})
	}

	return summaries
}

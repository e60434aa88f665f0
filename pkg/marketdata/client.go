// Package marketdata downloads historical daily price series from an
// external provider, with optional Parquet archiving of the raw bars.
package marketdata

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/quantbench/election-study/internal/logger"
	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
	"github.com/quantbench/election-study/pkg/marketdata/provider"
	"github.com/quantbench/election-study/pkg/marketdata/writer"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=yahoo polygon"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
	// ArchiveDir enables Parquet archiving of every fetched series when
	// non-empty.
	ArchiveDir string
}

// Client is the market data client. It selects a provider, reports download
// progress, and archives fetched series when configured to.
type Client struct {
	provider provider.Provider
	config   ClientConfig
	validate *validator.Validate
	logger   *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewProvider(config.ProviderType, config.PolygonApiKey)
	if err != nil {
		return nil, err
	}

	return &Client{
		provider: marketProvider,
		config:   config,
		validate: validate,
		logger:   log,
	}, nil
}

// FetchDaily downloads the ticker's daily bars for [start, end). The fetch
// is a single blocking call with no retry. When an archive directory is
// configured, the fetched series is exported to Parquet as a side artifact;
// archive failures are logged and do not fail the fetch.
func (c *Client) FetchDaily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", ticker)),
		progressbar.OptionShowCount(),
	)

	series, err := c.provider.FetchDaily(ctx, ticker, start, end, func(current, total float64, message string) {
		bar.Add(1)
	})
	if err != nil {
		return types.Series{}, err
	}

	bar.Finish()

	if c.config.ArchiveDir != "" && !series.Empty() {
		if archiveErr := c.archive(series, start, end); archiveErr != nil {
			c.logger.Warn("failed to archive series",
				zap.String("ticker", ticker),
				zap.Error(archiveErr),
			)
		}
	}

	return series, nil
}

// archive exports the series to <TICKER>_<start>_<end>_1_day.parquet in the
// archive directory and logs the coverage of what was written.
func (c *Client) archive(series types.Series, start, end time.Time) error {
	fileName := fmt.Sprintf("%s_%s_%s_1_day.parquet",
		sanitizeTicker(series.Symbol),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
	outputPath := filepath.Join(c.config.ArchiveDir, fileName)

	seriesWriter := writer.NewDuckDBWriter(outputPath)
	if err := seriesWriter.Initialize(); err != nil {
		return err
	}
	defer seriesWriter.Close()

	for _, b := range series.Bars {
		if err := seriesWriter.Write(series.Symbol, b); err != nil {
			return err
		}
	}

	path, err := seriesWriter.Finalize()
	if err != nil {
		return err
	}

	coverage, err := seriesWriter.Coverage()
	if err != nil {
		return err
	}

	c.logger.Info("archived series",
		zap.String("ticker", series.Symbol),
		zap.String("path", path),
		zap.Int64("rows", coverage.Rows),
		zap.String("first_day", coverage.FirstDay.Format("2006-01-02")),
		zap.String("last_day", coverage.LastDay.Format("2006-01-02")),
	)

	return nil
}

// sanitizeTicker strips characters that have no place in a filename.
func sanitizeTicker(ticker string) string {
	return strings.TrimPrefix(ticker, "^")
}

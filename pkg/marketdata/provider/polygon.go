package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// PolygonClient fetches daily aggregates from Polygon.io. Requires an API
// key; note the free tier does not serve index symbols such as ^VIX.
type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a Polygon provider.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires an API key")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
	}, nil
}

// FetchDaily implements Provider. Polygon's aggregate range is inclusive on
// both ends, so the exclusive end of the interface convention maps to the
// prior day.
func (c *PolygonClient) FetchDaily(ctx context.Context, ticker string, start, end time.Time, onProgress OnFetchProgress) (types.Series, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end.AddDate(0, 0, -1)),
	}.WithLimit(50000)

	iter := c.client.ListAggs(ctx, params)

	series := types.Series{Symbol: ticker}
	total := float64(end.Sub(start).Hours() / 24)

	for iter.Next() {
		agg := iter.Item()
		series.Bars = append(series.Bars, types.Bar{
			Time:   time.Time(agg.Timestamp).UTC().Truncate(24 * time.Hour),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})

		if onProgress != nil {
			onProgress(float64(len(series.Bars)), total, fmt.Sprintf("Downloading %s", ticker))
		}
	}

	if iter.Err() != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeFetchFailed, iter.Err(), "error iterating polygon aggregates for %s", ticker)
	}

	series.Sort()

	return series, nil
}

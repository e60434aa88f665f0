package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// The chart endpoint rejects requests without a browser user agent.
const yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// YahooClient fetches daily bars from the Yahoo Finance v8 chart API. No
// API key is required, and index symbols such as ^VIX are served.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a Yahoo Finance provider.
func NewYahooClient() Provider {
	return &YahooClient{
		httpClient: &http.Client{},
		baseURL:    defaultYahooBaseURL,
	}
}

// NewYahooClientWithBaseURL creates a Yahoo Finance provider against a
// custom endpoint. Used by tests.
func NewYahooClientWithBaseURL(baseURL string) Provider {
	return &YahooClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// yahooChartResponse mirrors the chart endpoint's JSON envelope.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// FetchDaily implements Provider. The chart API takes unix-second period
// bounds with period2 exclusive, matching the interface convention
// directly.
func (c *YahooClient) FetchDaily(ctx context.Context, ticker string, start, end time.Time, onProgress OnFetchProgress) (types.Series, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to build request for %s", ticker)
	}

	req.Header.Set("User-Agent", yahooUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeFetchFailed, err, "request failed for %s", ticker)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Series{}, errors.Newf(errors.ErrCodeFetchFailed, "unexpected status %d for %s", resp.StatusCode, ticker)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to decode chart response for %s", ticker)
	}

	series := types.Series{Symbol: ticker}

	if len(chartResp.Chart.Result) == 0 {
		return series, nil
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return series, nil
	}

	quote := result.Indicators.Quote[0]
	if len(result.Timestamp) != len(quote.Close) {
		return types.Series{}, errors.Newf(errors.ErrCodeParseFailed,
			"mismatched chart arrays for %s: %d timestamps, %d closes", ticker, len(result.Timestamp), len(quote.Close))
	}

	total := float64(len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// Nulls in the quote arrays decode to zero; a session with no
		// close is not a trading day for this study.
		if quote.Close[i] <= 0 {
			continue
		}

		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		series.Bars = append(series.Bars, types.Bar{
			Time:   day,
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  quote.Close[i],
			Volume: at(quote.Volume, i),
		})

		if onProgress != nil {
			onProgress(float64(i+1), total, fmt.Sprintf("Downloading %s", ticker))
		}
	}

	series.Sort()

	return series, nil
}

// at reads vals[i], tolerating quote arrays the endpoint omitted entirely.
func at(vals []float64, i int) float64 {
	if i >= len(vals) {
		return 0
	}

	return vals[i]
}

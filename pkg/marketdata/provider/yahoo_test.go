package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quantbench/election-study/pkg/errors"
)

type YahooTestSuite struct {
	suite.Suite
}

func TestYahooSuite(t *testing.T) {
	suite.Run(t, new(YahooTestSuite))
}

// chartPayload builds a minimal chart response with the given unix-day
// timestamps and closes. A zero close models the API's null for a session
// without a print.
func chartPayload(timestamps []int64, closes []float64) string {
	ts := ""
	cs := ""

	for i := range timestamps {
		if i > 0 {
			ts += ","
			cs += ","
		}

		ts += fmt.Sprintf("%d", timestamps[i])

		if closes[i] == 0 {
			cs += "null"
		} else {
			cs += fmt.Sprintf("%g", closes[i])
		}
	}

	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s], "open": [%s], "high": [%s], "low": [%s], "volume": [%s]}]}
			}],
			"error": null
		}
	}`, ts, cs, cs, cs, cs, cs)
}

func unixDay(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC).Unix()
}

func (suite *YahooTestSuite) serve(handler http.HandlerFunc) Provider {
	server := httptest.NewServer(handler)
	suite.T().Cleanup(server.Close)

	return NewYahooClientWithBaseURL(server.URL)
}

func (suite *YahooTestSuite) TestFetchDaily() {
	payload := chartPayload(
		[]int64{unixDay(2020, 11, 2), unixDay(2020, 11, 3), unixDay(2020, 11, 4)},
		[]float64{330.20, 336.03, 339.51},
	)

	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		suite.Contains(r.URL.Path, "/v8/finance/chart/SPY")
		suite.Equal("1d", r.URL.Query().Get("interval"))
		suite.NotEmpty(r.Header.Get("User-Agent"))
		fmt.Fprint(w, payload)
	})

	series, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	suite.Require().NoError(err)
	suite.Equal("SPY", series.Symbol)
	suite.Require().Len(series.Bars, 3)
	suite.Equal(time.Date(2020, 11, 2, 0, 0, 0, 0, time.UTC), series.Bars[0].Time)
	suite.Equal(330.20, series.Bars[0].Close)
	suite.Equal(339.51, series.Bars[2].Close)
}

func (suite *YahooTestSuite) TestFetchDailySkipsNullCloses() {
	payload := chartPayload(
		[]int64{unixDay(2020, 11, 2), unixDay(2020, 11, 3), unixDay(2020, 11, 4)},
		[]float64{330.20, 0, 339.51},
	)

	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	series, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	suite.Require().NoError(err)
	suite.Len(series.Bars, 2)
	suite.Equal(time.Date(2020, 11, 4, 0, 0, 0, 0, time.UTC), series.Bars[1].Time)
}

func (suite *YahooTestSuite) TestFetchDailyEmptyResult() {
	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	})

	series, err := client.FetchDaily(context.Background(), "NOPE",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	// Emptiness is not an error at this layer.
	suite.NoError(err)
	suite.True(series.Empty())
}

func (suite *YahooTestSuite) TestFetchDailyHTTPError() {
	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFetchFailed))
}

func (suite *YahooTestSuite) TestFetchDailyMalformedBody() {
	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	})

	_, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeParseFailed))
}

func (suite *YahooTestSuite) TestFetchDailyMismatchedArrays() {
	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"chart": {
				"result": [{
					"timestamp": [1604332800, 1604419200],
					"indicators": {"quote": [{"close": [330.20]}]}
				}],
				"error": null
			}
		}`)
	})

	_, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		nil)

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeParseFailed))
}

func (suite *YahooTestSuite) TestFetchDailyProgress() {
	payload := chartPayload(
		[]int64{unixDay(2020, 11, 2), unixDay(2020, 11, 3)},
		[]float64{330.20, 336.03},
	)

	client := suite.serve(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	})

	calls := 0
	_, err := client.FetchDaily(context.Background(), "SPY",
		time.Date(2020, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 11, 5, 0, 0, 0, 0, time.UTC),
		func(current, total float64, message string) {
			calls++
		})

	suite.NoError(err)
	suite.Equal(2, calls)
}

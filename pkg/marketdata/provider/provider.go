package provider

import (
	"context"
	"time"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
)

// OnFetchProgress reports incremental progress while a series downloads.
type OnFetchProgress = func(current float64, total float64, message string)

// Provider fetches historical daily closing bars for one ticker.
type Provider interface {
	// FetchDaily downloads the daily bars for the given ticker and date
	// range. Start is inclusive, end is exclusive; both upstream APIs are
	// mapped onto that convention. The returned series is sorted by date.
	// An empty range is returned as an empty series, not an error; the
	// caller decides whether emptiness is fatal.
	FetchDaily(ctx context.Context, ticker string, start, end time.Time, onProgress OnFetchProgress) (types.Series, error)
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerType ProviderType, polygonAPIKey string) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(), nil
	case ProviderPolygon:
		return NewPolygonClient(polygonAPIKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

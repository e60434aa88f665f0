package study

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/quantbench/election-study/pkg/errors"
)

// Config holds the parameters of one study run. The defaults reproduce the
// canonical run: VIX and SPY daily closes around the 2000-2020 U.S. election
// dates.
type Config struct {
	// VolatilityTicker is the volatility index symbol.
	VolatilityTicker string `validate:"required"`
	// EquityTicker is the broad-market equity index symbol.
	EquityTicker string `validate:"required"`
	// StartDate is the inclusive start of the fetch range.
	StartDate time.Time `validate:"required"`
	// EndDate is the exclusive end of the fetch range.
	EndDate time.Time `validate:"required,gtfield=StartDate"`
	// ElectionDates maps each election year to its date.
	ElectionDates map[int]time.Time `validate:"required,min=1"`
	// OutputDir receives every CSV and chart artifact.
	OutputDir string `validate:"required"`
}

// DefaultConfig returns the canonical run parameters. The end date is one
// day past 2021-01-01 so that day is included if it was a trading day.
func DefaultConfig() Config {
	return Config{
		VolatilityTicker: "^VIX",
		EquityTicker:     "SPY",
		StartDate:        time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
		ElectionDates: map[int]time.Time{
			2000: time.Date(2000, 11, 7, 0, 0, 0, 0, time.UTC),
			2004: time.Date(2004, 11, 2, 0, 0, 0, 0, time.UTC),
			2008: time.Date(2008, 11, 4, 0, 0, 0, 0, time.UTC),
			2012: time.Date(2012, 11, 6, 0, 0, 0, 0, time.UTC),
			2016: time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC),
			2020: time.Date(2020, 11, 3, 0, 0, 0, 0, time.UTC),
		},
		OutputDir: ".",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid study configuration", err)
	}

	return nil
}

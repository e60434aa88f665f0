package writer

import (
	"time"

	"github.com/quantbench/election-study/internal/types"
)

// Coverage summarizes an archived series: row count and date span.
type Coverage struct {
	Rows     int64
	FirstDay time.Time
	LastDay  time.Time
}

// SeriesWriter defines the interface for archiving a fetched price series.
type SeriesWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single daily bar.
	Write(symbol string, bar types.Bar) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Coverage reports what was archived. Valid after Finalize.
	Coverage() (Coverage, error)
	// Close releases any resources held by the writer.
	Close() error
}

package report

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantbench/election-study/pkg/errors"
)

// TickerSummary describes one fetched series.
type TickerSummary struct {
	Symbol   string `yaml:"symbol"`
	Bars     int    `yaml:"bars"`
	FirstDay string `yaml:"first_day"`
	LastDay  string `yaml:"last_day"`
}

// RunSummary is the YAML artifact describing a completed run.
type RunSummary struct {
	RunID           string          `yaml:"run_id"`
	GeneratedAt     time.Time       `yaml:"generated_at"`
	Years           []int           `yaml:"years"`
	Tickers         []TickerSummary `yaml:"tickers"`
	UnresolvedCells int             `yaml:"unresolved_cells"`
}

// WriteSummary writes the run summary to path.
func WriteSummary(path string, summary RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to marshal run summary", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write %s", path)
	}

	return nil
}

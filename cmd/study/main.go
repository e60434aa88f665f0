package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/quantbench/election-study/internal/logger"
	"github.com/quantbench/election-study/internal/study"
	"github.com/quantbench/election-study/internal/version"
	"github.com/quantbench/election-study/pkg/marketdata"
	"github.com/quantbench/election-study/pkg/marketdata/provider"
)

// runAction is the core logic executed by the CLI command. A zero-flag
// invocation reproduces the canonical run: VIX and SPY daily closes around
// the 2000-2020 election dates, artifacts in the current directory.
func runAction(ctx context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	config := study.DefaultConfig()
	config.OutputDir = cmd.String("output")

	clientConfig := marketdata.ClientConfig{
		ProviderType:  provider.ProviderType(cmd.String("provider")),
		PolygonApiKey: os.Getenv("POLYGON_API_KEY"),
		ArchiveDir:    cmd.String("archive"),
	}

	client, err := marketdata.NewClient(clientConfig, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	s, err := study.New(config, client, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create study: %w", err)
	}

	return s.Run(ctx)
}

func main() {
	// Define the CLI application
	cmd := &cli.Command{
		Name:    "study",
		Usage:   "Tabulate and chart VIX/SPY closing prices around U.S. election dates",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Directory receiving the CSV and chart artifacts",
				Value:    ".",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    fmt.Sprintf("Data provider to use (e.g., %s, %s)", provider.ProviderYahoo, provider.ProviderPolygon),
				Value:    string(provider.ProviderYahoo),
				Required: false,
			},
			&cli.StringFlag{
				Name:     "archive",
				Aliases:  []string{"a"},
				Usage:    "Directory for Parquet archives of the raw downloads; empty disables archiving",
				Value:    "",
				Required: false,
			},
		},
		Action: runAction,
	}

	// Run the CLI application
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

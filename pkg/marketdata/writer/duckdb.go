package writer

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// DuckDBWriter archives daily bars through an in-memory DuckDB table and
// exports them to a Parquet file on finalize. The Parquet file is a
// write-only export of the raw download; nothing in the pipeline reads it
// back.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	finalized  bool
	outputPath string
}

// NewDuckDBWriter creates a DuckDB writer that exports to outputPath.
func NewDuckDBWriter(outputPath string) SeriesWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
	}
}

// Initialize opens the in-memory database, creates the bar table, begins a
// transaction, and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeArchiveFailed, "failed to open duckdb connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_bars (
			id TEXT,
			symbol TEXT,
			day TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeArchiveFailed, "failed to create daily_bars table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeArchiveFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO daily_bars (id, symbol, day, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeArchiveFailed, "failed to prepare insert statement", err)
	}

	return nil
}

// Write persists a single daily bar within the open transaction.
func (w *DuckDBWriter) Write(symbol string, bar types.Bar) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeArchiveFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		symbol,
		bar.Time,
		bar.Open,
		bar.High,
		bar.Low,
		bar.Close,
		bar.Volume,
	)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeArchiveFailed, err, "failed to insert bar for %s", symbol)
	}

	return nil
}

// Finalize commits the transaction and exports the table to Parquet.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeArchiveFailed, "writer not initialized or already finalized")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeArchiveFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	_, err := w.db.Exec(fmt.Sprintf(`COPY daily_bars TO '%s' (FORMAT PARQUET)`, w.outputPath))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeArchiveFailed, err, "failed to export parquet to %s", w.outputPath)
	}

	w.finalized = true

	return w.outputPath, nil
}

// Coverage reports the archived row count and date span.
func (w *DuckDBWriter) Coverage() (Coverage, error) {
	if !w.finalized {
		return Coverage{}, errors.New(errors.ErrCodeArchiveFailed, "coverage is only available after finalize")
	}

	query, args, err := sq.
		Select("count(*)", "min(day)", "max(day)").
		From("daily_bars").
		ToSql()
	if err != nil {
		return Coverage{}, errors.Wrap(errors.ErrCodeArchiveFailed, "failed to build coverage query", err)
	}

	var coverage Coverage
	if err := w.db.QueryRow(query, args...).Scan(&coverage.Rows, &coverage.FirstDay, &coverage.LastDay); err != nil {
		return Coverage{}, errors.Wrap(errors.ErrCodeArchiveFailed, "failed to query coverage", err)
	}

	return coverage, nil
}

// Close cleans up the statement, any open transaction, and the database
// connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close statement: %w", err))
		}

		w.stmt = nil
	}

	// If the transaction is still active (Finalize not called or failed),
	// roll it back before closing the connection.
	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close db connection: %w", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		errMsg := "errors occurred during close:"
		for _, e := range closeErrors {
			errMsg += fmt.Sprintf("\n- %v", e)
		}

		return errors.New(errors.ErrCodeArchiveFailed, errMsg)
	}

	return nil
}

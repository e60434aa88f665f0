package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// WriteTableCSV writes the table to path as a delimited file: a Year column
// followed by the table's columns in their fixed order. No-value cells
// become empty fields.
func WriteTableCSV(path string, t types.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "Year")
	header = append(header, t.Columns...)

	if err := w.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write header", err)
	}

	for _, row := range t.Rows {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(row.Year))

		for _, col := range t.Columns {
			cell := row.Cells[col]
			if cell.IsNone() {
				record = append(record, "")
				continue
			}

			record = append(record, fmt.Sprintf("%f", cell.Unwrap()))
		}

		if err := w.Write(record); err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write row for %d", row.Year)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to flush csv", err)
	}

	return nil
}

package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-transactions/internal/models"
)

// Columns is the header row of the output table.
var Columns = []string{"Date", "Description", "Credits", "Debits", "Balance"}

// Metadata is written as "# key,value" rows ahead of the table when
// CSVWriter.IncludeHeader is set.
type Metadata struct {
	RunID   string
	Sources []string
}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
	Metadata      Metadata
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, txns); err != nil {
		return err
	}
	return f.Close()
}

// Write writes transactions in CSV format to the given writer. Amount
// columns are copied verbatim.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		if w.Metadata.RunID != "" {
			if err := writer.Write([]string{"# Run", w.Metadata.RunID}); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
		for _, src := range w.Metadata.Sources {
			if err := writer.Write([]string{"# Source", src}); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txns {
		row := []string{
			txn.Date,
			txn.Description,
			txn.Credits,
			txn.Debits,
			txn.Balance,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/cvsspop/internal/parquet"
)

// ExecuteHistoryExport writes the entire scoring history to a Parquet file.
func ExecuteHistoryExport(w io.Writer, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalEntries == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total history entries: %d\n", status.TotalEntries)

	entries, err := store.List(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve history entries: %w", err)
	}

	records := parquet.ConvertHistoryEntries(entries)
	if err := parquet.WriteHistoryParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d history entries to: %s\n", len(records), outputFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet file can be used with:")
	_, _ = fmt.Fprintln(w, "  - Apache Spark")
	_, _ = fmt.Fprintln(w, "  - Pandas (via pyarrow)")
	_, _ = fmt.Fprintln(w, "  - DuckDB")
	return nil
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintHistory outputs history entries, dispatching based on the output format configured.
func PrintHistory(entries []schema.HistoryEntry, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return WriteHistoryJSON(w, entries) },
		func(w io.Writer) error { return WriteHistoryCSV(w, entries) },
		func(w io.Writer) error { return WriteHistoryText(w, entries, cfg, getMaxTableVectorWidth()) },
	)
}

// WriteHistoryText writes the history table, newest first.
func WriteHistoryText(w io.Writer, entries []schema.HistoryEntry, cfg *contract.Config, vectorWidth int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No history entries found.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Time", "Standard", "Score", "Severity", "Vector"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.CreatedAt.Local().Format(contract.DateTimeFormat),
			e.Standard.Title(),
			schema.FormatScore(e.Score),
			severityLabel(e.Severity, cfg),
			contract.TruncateVector(e.Vector, vectorWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d entries (limit: %d)\n", len(entries), cfg.ResultLimit)
	return err
}

// WriteHistoryJSON writes history entries in JSON format.
func WriteHistoryJSON(w io.Writer, entries []schema.HistoryEntry) error {
	if entries == nil {
		entries = []schema.HistoryEntry{}
	}
	return writeJSON(w, entries)
}

// WriteHistoryCSV writes history entries in CSV format.
func WriteHistoryCSV(w io.Writer, entries []schema.HistoryEntry) error {
	header := []string{"id", "standard", "vector", "score", "severity", "created_at"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			rec := []string{
				e.ID,
				string(e.Standard),
				e.Vector,
				schema.FormatScore(e.Score),
				string(e.Severity),
				e.CreatedAt.UTC().Format(contract.DateTimeFormat),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintState outputs the persisted popup state, dispatching based on the output format configured.
func PrintState(report schema.StateReport, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return WriteStateJSON(w, report) },
		func(w io.Writer) error { return WriteStateCSV(w, report) },
		func(w io.Writer) error { return WriteStateText(w, report, cfg) },
	)
}

// WriteStateText writes the popup state as a table with the active standard marked.
func WriteStateText(w io.Writer, report schema.StateReport, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Active tab: %s\n", report.ActiveTab); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"", "Standard", "Score", "Severity", "Vector"})
	var data [][]string
	for _, sr := range report.Standards {
		marker := ""
		if sr.Standard == report.Active {
			marker = "*"
		}
		data = append(data, []string{
			marker,
			sr.Title,
			sr.ScoreText(),
			severityLabel(sr.Severity, cfg),
			sr.Vector,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteStateJSON writes the popup state in JSON format.
func WriteStateJSON(w io.Writer, report schema.StateReport) error {
	return writeJSON(w, report)
}

// WriteStateCSV writes one row per standard.
func WriteStateCSV(w io.Writer, report schema.StateReport) error {
	header := []string{"standard", "valid", "score", "severity", "vector", "active"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, sr := range report.Standards {
			rec := append(evaluationRecord(sr.Evaluation), strconv.FormatBool(sr.Standard == report.Active))
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

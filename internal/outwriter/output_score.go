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

// jsonEvaluation is the JSON shape of an evaluation with its display text.
type jsonEvaluation struct {
	schema.Evaluation
	ScoreText string `json:"score_text"`
}

// PrintScore outputs one evaluation, dispatching based on the output format configured.
func PrintScore(ev schema.Evaluation, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return WriteScoreJSON(w, ev) },
		func(w io.Writer) error { return WriteScoreCSV(w, ev) },
		func(w io.Writer) error { return WriteScoreText(w, ev, cfg) },
	)
}

// WriteScoreText writes the human-readable score table.
func WriteScoreText(w io.Writer, ev schema.Evaluation, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Standard", "Score", "Severity", "Vector"})
	if err := table.Append([]string{
		ev.Standard.Title(),
		ev.ScoreText(),
		severityLabel(ev.Severity, cfg),
		ev.Vector,
	}); err != nil {
		return err
	}
	return table.Render()
}

// WriteScoreJSON writes the evaluation in JSON format.
func WriteScoreJSON(w io.Writer, ev schema.Evaluation) error {
	return writeJSON(w, jsonEvaluation{Evaluation: ev, ScoreText: ev.ScoreText()})
}

// WriteScoreCSV writes the evaluation in CSV format.
func WriteScoreCSV(w io.Writer, ev schema.Evaluation) error {
	header := []string{"standard", "valid", "score", "severity", "vector"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if err := cw.Write(evaluationRecord(ev)); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}

// evaluationRecord flattens an evaluation into CSV cells.
func evaluationRecord(ev schema.Evaluation) []string {
	return []string{
		string(ev.Standard),
		strconv.FormatBool(ev.Valid),
		ev.ScoreText(),
		string(ev.Severity),
		ev.Vector,
	}
}

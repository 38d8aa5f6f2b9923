package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintMetrics displays the metric schemas of the given standards.
// This is a static display that does not touch any store.
func PrintMetrics(schemas []*schema.MetricSchema, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return WriteMetricsJSON(w, schemas) },
		func(w io.Writer) error { return WriteMetricsCSV(w, schemas) },
		func(w io.Writer) error { return WriteMetricsText(w, schemas, cfg) },
	)
}

// WriteMetricsText displays metrics in human-readable text format with one table per standard.
func WriteMetricsText(w io.Writer, schemas []*schema.MetricSchema, cfg *contract.Config) error {
	for i, ms := range schemas {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		title := fmt.Sprintf("%s Base Metrics (%s)", ms.Title, ms.Prefix)
		if cfg.UseEmojis {
			title = "🧮 " + title
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Key", "Metric", "Values", "Default"})
		var data [][]string
		for _, m := range ms.Metrics {
			data = append(data, []string{m.Key, m.Name, formatValues(m.Values), m.Default})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// formatValues renders the legal values of a metric as "N=Network, A=Adjacent".
func formatValues(values []schema.MetricValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Code + "=" + v.Name
	}
	return strings.Join(parts, ", ")
}

// WriteMetricsJSON writes the metric schemas in JSON format.
func WriteMetricsJSON(w io.Writer, schemas []*schema.MetricSchema) error {
	return writeJSON(w, schemas)
}

// WriteMetricsCSV writes one row per metric value.
func WriteMetricsCSV(w io.Writer, schemas []*schema.MetricSchema) error {
	header := []string{"standard", "key", "metric", "code", "value", "default", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, ms := range schemas {
			for _, m := range ms.Metrics {
				for _, v := range m.Values {
					rec := []string{
						string(ms.Standard),
						m.Key,
						m.Name,
						v.Code,
						v.Name,
						strconv.FormatBool(v.Code == m.Default),
						v.Description,
					}
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV record: %w", err)
					}
				}
			}
		}
		return nil
	})
}

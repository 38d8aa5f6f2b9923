package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleEval = schema.Evaluation{
	Standard: schema.V3,
	Valid:    true,
	Score:    7.5,
	Severity: schema.SeverityHigh,
	Vector:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N",
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteScore(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteScoreText(&buf, sampleEval, &contract.Config{}))
		out := buf.String()
		assert.Contains(t, out, "CVSS 3.1")
		assert.Contains(t, out, "7.5")
		assert.Contains(t, out, "High")
		assert.Contains(t, out, sampleEval.Vector)
	})

	t.Run("text with emoji", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteScoreText(&buf, sampleEval, &contract.Config{UseEmojis: true}))
		assert.Contains(t, buf.String(), "😎 High")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteScoreJSON(&buf, sampleEval))

		var result map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "cvss3", result["standard"])
		assert.Equal(t, 7.5, result["score"])
		assert.Equal(t, "7.5", result["score_text"])
		assert.Equal(t, true, result["valid"])
	})

	t.Run("invalid sentinel", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteScoreCSV(&buf, schema.InvalidEvaluation(schema.V4)))
		records := readCSV(t, buf.Bytes())
		require.Len(t, records, 2)
		assert.Equal(t, []string{"cvss4", "false", "Error", "N/A", "Invalid metrics"}, records[1])
	})
}

func TestWriteMetrics(t *testing.T) {
	schemas := []*schema.MetricSchema{schema.V3Schema, schema.V4Schema}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMetricsText(&buf, schemas, &contract.Config{}))
		out := buf.String()
		assert.Contains(t, out, "CVSS 3.1 Base Metrics (CVSS:3.1/)")
		assert.Contains(t, out, "CVSS 4.0 Base Metrics (CVSS:4.0/)")
		assert.Contains(t, out, "Attack Requirements")
		assert.Contains(t, out, "N=Network, A=Adjacent, L=Local, P=Physical")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMetricsJSON(&buf, schemas))

		var result []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		require.Len(t, result, 2)
		assert.Equal(t, "CVSS:4.0/", result[1]["prefix"])
		assert.Len(t, result[1]["metrics"], 11)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMetricsCSV(&buf, []*schema.MetricSchema{schema.V3Schema}))
		records := readCSV(t, buf.Bytes())
		assert.Equal(t, "standard", records[0][0])
		// AV has 4 values, 7 other metrics have 2 or 3
		assert.Equal(t, []string{"cvss3", "AV", "Attack Vector", "N", "Network", "true"}, records[1][:6])
		assert.Equal(t, "false", records[2][5])
	})
}

func TestWriteState(t *testing.T) {
	report := schema.StateReport{
		ActiveTab: schema.TabCVSS4,
		Active:    schema.V4,
		Standards: []schema.StandardReport{
			{Evaluation: sampleEval, Title: "CVSS 3.1", Metrics: schema.Assignment{"C": "H"}},
			{Evaluation: schema.InvalidEvaluation(schema.V4), Title: "CVSS 4.0"},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStateText(&buf, report, &contract.Config{}))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "Active tab: cvss4\n"))
		assert.Contains(t, out, "Invalid metrics")
		assert.Contains(t, out, "Error")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStateJSON(&buf, report))

		var decoded schema.StateReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report, decoded)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStateCSV(&buf, report))
		records := readCSV(t, buf.Bytes())
		require.Len(t, records, 3)
		assert.Equal(t, "false", records[1][5])
		assert.Equal(t, "true", records[2][5])
	})
}

func TestWriteHistory(t *testing.T) {
	at := time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)
	entries := []schema.HistoryEntry{
		{ID: "b", Standard: schema.V4, Vector: "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N", Score: 9.3, Severity: schema.SeverityCritical, CreatedAt: at.Add(time.Minute)},
		{ID: "a", Standard: schema.V3, Vector: sampleEval.Vector, Score: 7.5, Severity: schema.SeverityHigh, CreatedAt: at},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistoryText(&buf, entries, &contract.Config{ResultLimit: 25}, 44))
		out := buf.String()
		assert.Contains(t, out, "CVSS 4.0")
		assert.Contains(t, out, "9.3")
		assert.Contains(t, out, "...")
		assert.Contains(t, out, "Showing 2 entries (limit: 25)")
	})

	t.Run("text empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistoryText(&buf, nil, &contract.Config{}, 44))
		assert.Equal(t, "No history entries found.\n", buf.String())
	})

	t.Run("json empty is an array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistoryJSON(&buf, nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistoryCSV(&buf, entries))
		records := readCSV(t, buf.Bytes())
		require.Len(t, records, 3)
		assert.Equal(t, []string{"a", "cvss3", sampleEval.Vector, "7.5", "High", "2026-04-05T06:07:08Z"}, records[2])
	})
}

func TestPrintScoreToFile(t *testing.T) {
	tests := []struct {
		name   string
		output schema.OutputMode
		check  func(t *testing.T, data []byte)
	}{
		{"json", schema.JSONOut, func(t *testing.T, data []byte) {
			assert.True(t, json.Valid(data))
		}},
		{"csv", schema.CSVOut, func(t *testing.T, data []byte) {
			assert.Len(t, readCSV(t, data), 2)
		}},
		{"text", schema.TextOut, func(t *testing.T, data []byte) {
			assert.Contains(t, string(data), "7.5")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "score."+tt.name)
			cfg := &contract.Config{Output: tt.output, OutputFile: path}
			require.NoError(t, NewOutWriter().WriteScore(sampleEval, cfg))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestSeverityLabel(t *testing.T) {
	assert.Equal(t, "Low", severityLabel(schema.SeverityLow, &contract.Config{}))
	assert.Equal(t, "🔥 Critical", severityLabel(schema.SeverityCritical, &contract.Config{UseEmojis: true}))
	assert.Contains(t, severityLabel(schema.SeverityMedium, &contract.Config{UseColors: true}), "Medium")
}

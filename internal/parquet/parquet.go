// Package parquet exports scoring history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/cvsspop/schema"
	"github.com/parquet-go/parquet-go"
)

// HistoryRecord is one scored vector.
// This struct maps to the cvsspop_history database table.
type HistoryRecord struct {
	// EntryID is the uuid of the history entry
	EntryID string `parquet:"entry_id,snappy"`

	// Standard is cvss3 or cvss4
	Standard string `parquet:"standard,snappy,dict"`

	// Vector is the canonical vector string that was scored
	Vector string `parquet:"vector,snappy"`

	// Score is the base score with one decimal of precision
	Score float64 `parquet:"score,snappy"`

	// Severity is the qualitative band of Score
	Severity string `parquet:"severity,snappy,dict"`

	// CreatedAt is when the evaluation happened (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// ConvertHistoryEntries converts schema.HistoryEntry values to HistoryRecord for Parquet export.
func ConvertHistoryEntries(entries []schema.HistoryEntry) []HistoryRecord {
	result := make([]HistoryRecord, len(entries))
	for i, entry := range entries {
		result[i] = HistoryRecord{
			EntryID:   entry.ID,
			Standard:  string(entry.Standard),
			Vector:    entry.Vector,
			Score:     entry.Score,
			Severity:  string(entry.Severity),
			CreatedAt: entry.CreatedAt,
		}
	}
	return result
}

// WriteHistoryParquet writes a slice of HistoryRecord structs to a Parquet file.
func WriteHistoryParquet(data []HistoryRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the HistoryRecord struct tags
	writer := parquet.NewGenericWriter[HistoryRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/cvsspop/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []schema.HistoryEntry {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []schema.HistoryEntry{
		{
			ID:        "6f1c2b8e-0000-4000-8000-000000000001",
			Standard:  schema.V3,
			Vector:    "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N",
			Score:     7.5,
			Severity:  schema.SeverityHigh,
			CreatedAt: now,
		},
		{
			ID:        "6f1c2b8e-0000-4000-8000-000000000002",
			Standard:  schema.V4,
			Vector:    "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N",
			Score:     9.3,
			Severity:  schema.SeverityCritical,
			CreatedAt: now.Add(90 * time.Second),
		},
	}
}

func TestHistoryRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(HistoryRecord))
	require.NotNil(t, s)

	for _, colName := range []string{"entry_id", "standard", "vector", "score", "severity", "created_at"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertHistoryEntries(t *testing.T) {
	records := ConvertHistoryEntries(sampleEntries())
	require.Len(t, records, 2)
	assert.Equal(t, "cvss4", records[1].Standard)
	assert.Equal(t, "Critical", records[1].Severity)
	assert.Empty(t, ConvertHistoryEntries(nil))
}

func TestWriteHistoryParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "history.parquet")
	data := ConvertHistoryEntries(sampleEntries())

	require.NoError(t, WriteHistoryParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[HistoryRecord](file)
	defer func() { _ = reader.Close() }()

	readData := make([]HistoryRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].EntryID, readData[i].EntryID)
		assert.Equal(t, data[i].Vector, readData[i].Vector)
		assert.InDelta(t, data[i].Score, readData[i].Score, 0.001)
		assert.Equal(t, data[i].Severity, readData[i].Severity)
		assert.WithinDuration(t, data[i].CreatedAt, readData[i].CreatedAt, time.Microsecond)
	}
}

func TestWriteHistoryParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteHistoryParquet([]HistoryRecord{}, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err)
}

func TestWriteHistoryParquet_BadPath(t *testing.T) {
	err := WriteHistoryParquet(nil, filepath.Join(t.TempDir(), "missing", "history.parquet"))
	assert.Error(t, err)
}

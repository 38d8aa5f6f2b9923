package contract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	tests := []struct {
		sev  schema.Severity
		want string
	}{
		{schema.SeverityCritical, CriticalColor.Sprint("Critical")},
		{schema.SeverityHigh, HighColor.Sprint("High")},
		{schema.SeverityMedium, MediumColor.Sprint("Medium")},
		{schema.SeverityLow, LowColor.Sprint("Low")},
		{schema.SeverityNone, NoneColor.Sprint("None")},
		{schema.SeverityNA, InvalidColor.Sprint("N/A")},
	}

	for _, tt := range tests {
		t.Run(string(tt.sev), func(t *testing.T) {
			got := GetColorLabel(tt.sev)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, got, string(tt.sev))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "nope", "out.json"))
		assert.Error(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	state := GetStateDBFilePath()
	history := GetHistoryDBFilePath()
	assert.True(t, strings.HasSuffix(state, ".cvsspop_state.db"))
	assert.True(t, strings.HasSuffix(history, ".cvsspop_history.db"))
	assert.NotEqual(t, state, history)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"No", false, false},
		{"false", false, false},
		{"0", false, false},
		{"", false, true},
		{"y", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBufferedLogger(t *testing.T) {
	l := &BufferedLogger{}
	l.Warn("saving popup state", errors.New("disk full"))
	l.Warn("recording history", errors.New("locked"))
	assert.Len(t, l.Lines(), 2)

	var buf bytes.Buffer
	l.Flush(&buf)
	assert.Equal(t, "Warn saving popup state: disk full\nWarn recording history: locked\n", buf.String())
	assert.Empty(t, l.Lines())
}

func TestTruncateVector(t *testing.T) {
	v := "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:N/A:N"
	assert.Equal(t, v, TruncateVector(v, 100))
	assert.Equal(t, "CVSS:3...", TruncateVector(v, 9))
	assert.Equal(t, v, TruncateVector(v, 3))
}

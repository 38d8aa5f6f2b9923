package contract

import (
	"testing"

	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		StateBackend: "sqlite",
		StateFormat:  "json",
		Output:       "text",
		Emoji:        "yes",
		Color:        "no",
		Limit:        DefaultResultLimit,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.StateBackend)
				assert.Equal(t, schema.JSONFormat, cfg.StateFormat)
				assert.Equal(t, schema.V3, cfg.Standard)
				assert.Empty(t, cfg.HistoryBackend)
				assert.True(t, cfg.UseEmojis)
				assert.False(t, cfg.UseColors)
			},
		},
		{
			name: "case insensitive enums",
			mutate: func(in *ConfigRawInput) {
				in.StateBackend = "NONE"
				in.StateFormat = "MsgPack"
				in.Output = "JSON"
				in.Standard = "4.0"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.NoneBackend, cfg.StateBackend)
				assert.Equal(t, schema.MsgpackFormat, cfg.StateFormat)
				assert.Equal(t, schema.JSONOut, cfg.Output)
				assert.Equal(t, schema.V4, cfg.Standard)
			},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "invalid state format",
			mutate:      func(in *ConfigRawInput) { in.StateFormat = "yaml" },
			expectError: true,
		},
		{
			name:        "invalid standard",
			mutate:      func(in *ConfigRawInput) { in.Standard = "cvss2" },
			expectError: true,
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "limit zero",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "invalid emoji",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid state backend",
			mutate:      func(in *ConfigRawInput) { in.StateBackend = "redis" },
			expectError: true,
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.StateBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgres history backend",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "postgresql"
				in.HistoryDBConnect = "host=localhost port=5432 user=u password=p dbname=cvss"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.HistoryBackend)
			},
		},
		{
			name:        "invalid history backend",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			expectError: true,
		},
		{
			name: "same sqlite default path",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
				in.StateDBConnect = GetHistoryDBFilePath()
			},
			expectError: true,
		},
		{
			name: "separate sqlite files",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/cvss", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/cvss", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=cvss", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=cvss", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Output: schema.CSVOut, ResultLimit: 5}
	clone := cfg.Clone()
	clone.ResultLimit = 10
	assert.Equal(t, 5, cfg.ResultLimit)
	assert.Equal(t, schema.CSVOut, clone.Output)
}

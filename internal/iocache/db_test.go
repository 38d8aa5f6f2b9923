package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/assert"
)

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{name: "valid simple name", tableName: "popup_state", wantErr: false},
		{name: "valid name with numbers", tableName: "popup_state_2", wantErr: false},
		{name: "valid name starting with underscore", tableName: "_popup", wantErr: false},
		{name: "valid mixed case", tableName: "PopupState", wantErr: false},
		{name: "empty name", tableName: "", wantErr: true},
		{name: "starts with number", tableName: "1popup", wantErr: true},
		{name: "contains dash", tableName: "popup-state", wantErr: true},
		{name: "sql injection", tableName: "popup; DROP TABLE users;--", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "", placeholders(schema.SQLiteBackend, 0))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`popup_state`", quoteTableName("popup_state", schema.MySQLBackend))
	assert.Equal(t, `"popup_state"`, quoteTableName("popup_state", schema.PostgreSQLBackend))
	assert.Equal(t, `"popup_state"`, quoteTableName("popup_state", schema.SQLiteBackend))
}

func TestDriverFor(t *testing.T) {
	for backend, want := range map[schema.DatabaseBackend]string{
		schema.SQLiteBackend:     "sqlite",
		schema.MySQLBackend:      "mysql",
		schema.PostgreSQLBackend: "pgx",
	} {
		got, err := driverFor(backend)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := driverFor(schema.NoneBackend)
	assert.Error(t, err)
}

func TestTimeScanner(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 6, time.FixedZone("X", 3600))

	ts := timeScanner{backend: schema.SQLiteBackend, text: formatTime(at, schema.SQLiteBackend).(string)}
	got, err := ts.value()
	assert.NoError(t, err)
	assert.True(t, at.Equal(got))

	bad := timeScanner{backend: schema.SQLiteBackend, text: "yesterday"}
	_, err = bad.value()
	assert.Error(t, err)

	native := timeScanner{backend: schema.PostgreSQLBackend, native: at}
	got, err = native.value()
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
}

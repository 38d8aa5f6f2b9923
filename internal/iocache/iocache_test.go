package iocache

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/cvsspop/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals isolates a test from the global Manager.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	t.Cleanup(func() {
		CloseStores()
		Manager.Lock()
		Manager.state = nil
		Manager.history = nil
		Manager.Unlock()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})
}

func historyEntry(i int, std schema.Standard, at time.Time) schema.HistoryEntry {
	return schema.HistoryEntry{
		ID:        fmt.Sprintf("00000000-0000-4000-8000-%012d", i),
		Standard:  std,
		Vector:    "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
		Score:     9.8,
		Severity:  schema.SeverityCritical,
		CreatedAt: at,
	}
}

func TestStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()
		statePath := filepath.Join(dir, "state.db")
		historyPath := filepath.Join(dir, "history.db")

		err := InitStores(schema.SQLiteBackend, statePath, schema.SQLiteBackend, historyPath)
		require.NoError(t, err, "Failed to initialize persistence")

		assert.NotNil(t, Manager.GetStateStore(), "State store should not be nil")
		assert.NotNil(t, Manager.GetHistoryStore(), "History store should not be nil")

		CloseStores()

		_, err = os.Stat(statePath)
		assert.False(t, os.IsNotExist(err), "State database file should be created")
		_, err = os.Stat(historyPath)
		assert.False(t, os.IsNotExist(err), "History database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		statePath := filepath.Join(t.TempDir(), "state.db")

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStores(schema.SQLiteBackend, statePath, "", ""))
		assert.NoError(t, InitStores(schema.SQLiteBackend, statePath, "", ""))
		assert.Nil(t, Manager.GetHistoryStore(), "History is disabled without a backend")

		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.NoneBackend, "", schema.NoneBackend, ""))
		assert.NotNil(t, Manager.GetStateStore())
		assert.NotNil(t, Manager.GetHistoryStore())
	})

	t.Run("invalid backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores("redis", "", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize state store")
	})
}

func TestStateStore_NoneBackend(t *testing.T) {
	store, err := NewStateStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	data, version, ts, err := store.Get(schema.RecordKey)
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.Zero(t, version)
	assert.Zero(t, ts)

	assert.NoError(t, store.Set(schema.RecordKey, []byte("{}"), 1, 123456789))
	data, _, _, err = store.Get(schema.RecordKey)
	assert.NoError(t, err)
	assert.Nil(t, data, "Set is a no-op on none backend")

	assert.NoError(t, store.Delete(schema.RecordKey))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestStateStore_SQLite(t *testing.T) {
	store, err := NewStateStore("popup_state", schema.SQLiteBackend, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	data, _, _, err := store.Get(schema.RecordKey)
	require.NoError(t, err)
	assert.Nil(t, data, "Missing key is not an error")

	require.NoError(t, store.Set(schema.RecordKey, []byte(`{"activeTab":"cvss3"}`), schema.RecordVersion, 100))
	require.NoError(t, store.Set(schema.RecordKey, []byte(`{"activeTab":"cvss4"}`), schema.RecordVersion, 200))

	data, version, ts, err := store.Get(schema.RecordKey)
	require.NoError(t, err)
	assert.Equal(t, `{"activeTab":"cvss4"}`, string(data), "Set overwrites the previous value")
	assert.Equal(t, schema.RecordVersion, version)
	assert.Equal(t, int64(200), ts)

	require.NoError(t, store.Set("other", []byte("x"), 1, 50))
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(50, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))

	require.NoError(t, store.Delete(schema.RecordKey))
	data, _, _, err = store.Get(schema.RecordKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStateStore_InvalidTableName(t *testing.T) {
	_, err := NewStateStore("bad-name", schema.SQLiteBackend, filepath.Join(t.TempDir(), "state.db"))
	assert.Error(t, err)
}

func TestHistoryStore_SQLite(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalEntries)

	base := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	require.NoError(t, store.Record(historyEntry(1, schema.V3, base)))
	require.NoError(t, store.Record(historyEntry(2, schema.V4, base.Add(time.Minute))))
	require.NoError(t, store.Record(historyEntry(3, schema.V3, base.Add(2*time.Minute))))

	all, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, historyEntry(3, schema.V3, base.Add(2*time.Minute)), all[0], "Newest entry comes first")
	assert.Equal(t, base, all[2].CreatedAt)

	limited, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalEntries)
	assert.Equal(t, all[0].ID, status.LastEntryID)
	assert.Equal(t, base.Add(2*time.Minute), status.LastEntryTime)
	assert.Equal(t, base, status.OldestEntryTime)
	assert.Equal(t, int64(2), status.PerStandard[schema.V3])
	assert.Equal(t, int64(1), status.PerStandard[schema.V4])

	// entry_id is unique
	assert.Error(t, store.Record(historyEntry(1, schema.V3, base)))
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Record(historyEntry(1, schema.V3, time.Now())))
	entries, err := store.List(10)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, store.Close())
}

func TestMigrateHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	var out bytes.Buffer

	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 2")

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	// The migrated table is usable by the store
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(historyEntry(1, schema.V4, time.Now())))
	require.NoError(t, store.Close())

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, out.String(), "to version 1")

	out.Reset()
	require.NoError(t, MigrateHistory(&out, schema.SQLiteBackend, dbPath, 0))
	assert.Contains(t, out.String(), "rolled back from version 1 to version 0")

	assert.Error(t, MigrateHistory(&out, schema.NoneBackend, "", -1))
}

func TestClearState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStateStore(stateTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearState(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "SQLite file should be removed")

	// Missing files are fine
	assert.NoError(t, ClearState(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearState(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearState("redis", "", ""))
}

func TestExecuteHistoryExport(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	require.NoError(t, InitStores(schema.NoneBackend, "", schema.SQLiteBackend, filepath.Join(dir, "history.db")))

	var out bytes.Buffer
	assert.Error(t, ExecuteHistoryExport(&out, ""), "Output file is required")

	err := ExecuteHistoryExport(&out, filepath.Join(dir, "empty.parquet"))
	assert.ErrorContains(t, err, "no history data")

	require.NoError(t, Manager.GetHistoryStore().Record(historyEntry(1, schema.V3, time.Now())))
	outputFile := filepath.Join(dir, "history.parquet")
	require.NoError(t, ExecuteHistoryExport(&out, outputFile))
	assert.Contains(t, out.String(), "Exported 1 history entries")

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	PrintStateStatus(&out, schema.StateStatus{Backend: "none"})
	assert.Equal(t, "State Backend: none\nConnected: false\n", out.String())

	out.Reset()
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	PrintHistoryStatus(&out, schema.HistoryStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    3,
		LastEntryID:     "abc",
		LastEntryTime:   at,
		OldestEntryTime: at,
		PerStandard:     map[schema.Standard]int64{schema.V3: 2, schema.V4: 1},
	})
	assert.Contains(t, out.String(), "Last Entry ID: abc")
	assert.Contains(t, out.String(), "  cvss3: 2\n  cvss4: 1\n")
}

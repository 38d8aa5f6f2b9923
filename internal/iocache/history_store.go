package iocache

import (
	"database/sql"
	"fmt"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/schema"
)

// historyTable is the name of the table for scoring history.
const historyTable = "cvsspop_history"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*HistoryStoreImpl, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(getCreateHistoryQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", historyTable, err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// getCreateHistoryQuery returns the CREATE TABLE query for cvsspop_history.
// It matches the first migration so stores and migrations agree.
func getCreateHistoryQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(historyTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				seq BIGINT AUTO_INCREMENT PRIMARY KEY,
				entry_id VARCHAR(36) NOT NULL UNIQUE,
				standard VARCHAR(16) NOT NULL,
				vector VARCHAR(255) NOT NULL,
				score DOUBLE NOT NULL,
				severity VARCHAR(16) NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				seq BIGSERIAL PRIMARY KEY,
				entry_id VARCHAR(36) NOT NULL UNIQUE,
				standard TEXT NOT NULL,
				vector TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				severity TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				entry_id TEXT NOT NULL UNIQUE,
				standard TEXT NOT NULL,
				vector TEXT NOT NULL,
				score REAL NOT NULL,
				severity TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// Record appends one history entry.
func (hs *HistoryStoreImpl) Record(entry schema.HistoryEntry) error {
	if hs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (entry_id, standard, vector, score, severity, created_at) VALUES (%s)`,
		quoteTableName(historyTable, hs.backend), placeholders(hs.backend, 6))
	_, err := hs.db.Exec(query,
		entry.ID,
		string(entry.Standard),
		entry.Vector,
		entry.Score,
		string(entry.Severity),
		formatTime(entry.CreatedAt, hs.backend),
	)
	if err != nil {
		return fmt.Errorf("failed to record history entry %s: %w", entry.ID, err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit of zero or less returns every entry.
func (hs *HistoryStoreImpl) List(limit int) ([]schema.HistoryEntry, error) {
	if hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT entry_id, standard, vector, score, severity, created_at FROM %s ORDER BY seq DESC`,
		quoteTableName(historyTable, hs.backend))
	var args []any
	if limit > 0 {
		query += " LIMIT " + placeholders(hs.backend, 1)
		args = append(args, limit)
	}

	rows, err := hs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.HistoryEntry
	for rows.Next() {
		var entry schema.HistoryEntry
		var std, sev string
		created := timeScanner{backend: hs.backend}
		if err := rows.Scan(&entry.ID, &std, &entry.Vector, &entry.Score, &sev, created.dest()); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.Standard = schema.Standard(std)
		entry.Severity = schema.Severity(sev)
		if entry.CreatedAt, err = created.value(); err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:     string(hs.backend),
		Connected:   hs.db != nil,
		PerStandard: make(map[schema.Standard]int64),
	}
	if hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(historyTable, hs.backend)

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	// Get last entry info
	last := timeScanner{backend: hs.backend}
	row = hs.db.QueryRow(fmt.Sprintf("SELECT entry_id, created_at FROM %s ORDER BY seq DESC LIMIT 1", quotedTableName))
	if err := row.Scan(&status.LastEntryID, last.dest()); err != nil {
		return status, fmt.Errorf("failed to get last entry info: %w", err)
	}
	lastTime, err := last.value()
	if err != nil {
		return status, err
	}
	status.LastEntryTime = lastTime

	// Get oldest entry time
	oldest := timeScanner{backend: hs.backend}
	row = hs.db.QueryRow(fmt.Sprintf("SELECT created_at FROM %s ORDER BY seq ASC LIMIT 1", quotedTableName))
	if err := row.Scan(oldest.dest()); err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	oldestTime, err := oldest.value()
	if err != nil {
		return status, err
	}
	status.OldestEntryTime = oldestTime

	rows, err := hs.db.Query(fmt.Sprintf("SELECT standard, COUNT(*) FROM %s GROUP BY standard", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to count entries per standard: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var std string
		var count int64
		if err := rows.Scan(&std, &count); err != nil {
			return status, fmt.Errorf("failed to scan standard count: %w", err)
		}
		status.PerStandard[schema.Standard(std)] = count
	}
	return status, rows.Err()
}

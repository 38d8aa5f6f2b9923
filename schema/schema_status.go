package schema

import "time"

// StateStatus represents the status of the popup state store.
type StateStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the scoring history store.
type HistoryStatus struct {
	Backend         string             `json:"backend"`
	Connected       bool               `json:"connected"`
	TotalEntries    int                `json:"total_entries"`
	LastEntryID     string             `json:"last_entry_id"`
	LastEntryTime   time.Time          `json:"last_entry_time"`
	OldestEntryTime time.Time          `json:"oldest_entry_time"`
	PerStandard     map[Standard]int64 `json:"per_standard"`
}

package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/internal/iocache"
	"github.com/huangsam/cvsspop/internal/outwriter"
	"github.com/huangsam/cvsspop/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig reads the history backend settings without opening any store.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	// Handle empty backend as NoneBackend
	backend := schema.NoneBackend
	if backendStr := viper.GetString("history-backend"); backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historyClearSetup loads minimal configuration needed to clear history.
func historyClearSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This does NOT initialize stores or create tables, allowing migrations to run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// requireHistory fails when history tracking is disabled.
func requireHistory() contract.HistoryStore {
	history := storeManager.GetHistoryStore()
	if history == nil {
		contract.LogFatal("History is unavailable", fmt.Errorf("set --history-backend to enable history tracking"))
	}
	return history
}

// historyCmd focused on scoring history management.
//
// Note: clear and migrate use minimal initialization instead of the full
// sharedSetup, so they work on a database that is missing or out of date.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage scoring history",
	Long: `Manage the history of scores produced by the popup.

Every selection, reset or saved vector edit records the standard, vector, score and severity,
as long as a history backend is configured. History is disabled by default.

Supported backends: SQLite, MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  list    - Show recent history entries
  status  - Show history statistics and connection info
  clear   - Remove all history data
  export  - Export history to a Parquet file
  migrate - Run database schema migrations

Examples:
  # Enable SQLite history for one session
  cvsspop tui --history-backend sqlite

  # Show the last 10 entries
  cvsspop history list --history-backend sqlite --limit 10`,
}

// historyListCmd lists the most recent entries.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent history entries",
	Long: `List history entries from newest to oldest, up to --limit entries.

Examples:
  # List the latest entries as CSV
  cvsspop history list --history-backend sqlite --output csv`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := requireHistory().List(cfg.ResultLimit)
		if err != nil {
			contract.LogFatal("Failed to list history", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(entries, cfg); err != nil {
			contract.LogFatal("Cannot write history", err)
		}
	},
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the history store.

Displays:
- Backend type and connection status
- Total number of entries and the last entry id
- Last and oldest entry timestamps
- Entry counts per standard

Examples:
  # Check history status
  cvsspop history status --history-backend sqlite`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := requireHistory().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears all history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history data",
	Long: `Delete all history data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history and migration tables

Examples:
  # Clear SQLite history
  cvsspop history clear --history-backend sqlite

  # Clear PostgreSQL history (set connection string via env variable)
  CVSSPOP_HISTORY_BACKEND=postgresql CVSSPOP_HISTORY_DB_CONNECT="..." cvsspop history clear`,
	PreRunE: historyClearSetup,
	Run: func(_ *cobra.Command, _ []string) {
		path := sqliteFilePath(cfg.HistoryDBConnect, iocache.GetHistoryDBFilePath)
		if err := iocache.ClearHistory(cfg.HistoryBackend, path, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to a Parquet file",
	Long: `Write every history entry to a Parquet file for offline analysis.

The --output-file flag is required.

Examples:
  # Export SQLite history
  cvsspop history export --history-backend sqlite --output-file history.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  cvsspop history migrate --history-backend sqlite

  # Migrate to specific version
  cvsspop history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  cvsspop history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

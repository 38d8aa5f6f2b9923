package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/cvsspop/core/session"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/internal/iocache"
	"github.com/huangsam/cvsspop/internal/outwriter"
	"github.com/huangsam/cvsspop/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stateSetup loads minimal configuration needed to clear the popup record.
// No store is opened, so a corrupt SQLite file can still be removed.
func stateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("state-backend"))
	connStr := viper.GetString("state-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StateBackend = backend
	cfg.StateDBConnect = connStr
	return nil
}

// stateStoreSetup validates the full config and opens only the state store.
func stateStoreSetup(cmd *cobra.Command, args []string) error {
	if err := configSetup(cmd, args); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StateBackend, cfg.StateDBConnect, "", ""); err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}
	return nil
}

// sqliteFilePath returns the file used by a SQLite backend.
func sqliteFilePath(connStr string, fallback func() string) string {
	if connStr != "" {
		return connStr
	}
	return fallback()
}

// openSession opens a session over the global stores for one-shot commands.
func openSession() (*session.Session, error) {
	opts := []session.Option{session.WithFormat(cfg.StateFormat)}
	if history := storeManager.GetHistoryStore(); history != nil {
		opts = append(opts, session.WithHistory(history))
	}
	return session.Open(rootCtx, registry, storeManager.GetStateStore(), opts...)
}

// closeSession waits for the last write of a one-shot command.
func closeSession(sess *session.Session) error {
	ctx, cancel := context.WithTimeout(rootCtx, closeTimeout)
	defer cancel()
	return sess.Close(ctx)
}

// stateCmd focused on the saved popup record.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and manage the saved popup state",
	Long: `Manage the popup state that is restored on every launch.

The popup saves the selections of both standards, the active standard and the visible tab
as a single record. Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  show   - Show the saved selections and their scores
  reset  - Restore default selections
  clear  - Remove the saved record entirely
  status - Show state store statistics and connection info

Examples:
  # Show the saved state
  cvsspop state show

  # Reset only CVSS 4.0 selections
  cvsspop state reset --standard cvss4`,
}

// stateShowCmd prints the saved popup state.
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved selections and their scores",
	Long: `Load the saved popup record and print the selections, score, severity and vector of each standard.

The active standard is marked. A missing or unreadable record shows the defaults.

Examples:
  # Show the saved state as JSON
  cvsspop state show --output json`,
	PreRunE: stateStoreSetup,
	Run: func(_ *cobra.Command, _ []string) {
		sess, err := openSession()
		if err != nil {
			contract.LogFatal("Failed to load popup state", err)
		}
		report := sess.Report()
		if err := closeSession(sess); err != nil {
			contract.LogWarn("Failed to close popup state", err)
		}
		if err := outwriter.NewOutWriter().WriteState(report, cfg); err != nil {
			contract.LogFatal("Cannot write popup state", err)
		}
	},
}

// stateResetCmd restores the default selections.
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default selections",
	Long: `Restore the default metric values of one standard, or of both when --standard is not given.

The active standard and visible tab are kept. Each reset is recorded when history is enabled.

Examples:
  # Reset both standards
  cvsspop state reset

  # Reset only CVSS 3.1
  cvsspop state reset --standard cvss3`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		standards := schema.AllStandards
		if input.Standard != "" {
			standards = []schema.Standard{cfg.Standard}
		}

		sess, err := openSession()
		if err != nil {
			contract.LogFatal("Failed to load popup state", err)
		}
		for _, std := range standards {
			if err := sess.Reset(std); err != nil {
				contract.LogFatal("Failed to reset popup state", err)
			}
			fmt.Printf(session.ResetNoticeFormat+"\n", std.Title())
		}
		if err := closeSession(sess); err != nil {
			contract.LogFatal("Failed to save popup state", err)
		}
	},
}

// stateClearCmd removes the saved record.
var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved popup state",
	Long: `Delete the saved popup state from the configured backend. The next launch starts from defaults.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the state table

Examples:
  # Clear SQLite state (default)
  cvsspop state clear

  # Clear MySQL state (set connection string via env variable)
  CVSSPOP_STATE_BACKEND=mysql CVSSPOP_STATE_DB_CONNECT="..." cvsspop state clear`,
	PreRunE: stateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		path := sqliteFilePath(cfg.StateDBConnect, iocache.GetStateDBFilePath)
		if err := iocache.ClearState(cfg.StateBackend, path, cfg.StateDBConnect); err != nil {
			contract.LogFatal("Failed to clear popup state", err)
		}
		fmt.Println("Popup state cleared successfully.")
	},
}

// stateStatusCmd shows state store status.
var stateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display state store statistics and connection details",
	Long: `Show detailed information about the popup state store.

Displays:
- Backend type and connection status
- Number of stored records
- Last and oldest write timestamps
- Table size where the backend reports one

Examples:
  # Check state status
  cvsspop state status`,
	PreRunE: stateStoreSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetStateStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get state status", err)
		}
		iocache.PrintStateStatus(os.Stdout, status)
	},
}

package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/huangsam/cvsspop/core/session"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// closeTimeout bounds how long the popup waits for the last write on exit.
const closeTimeout = 5 * time.Second

// tuiCmd opens the interactive popup.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive CVSS vector builder.",
	Long: `Open the popup in the terminal. Pick metric values, watch the score update, and copy the vector with OSC 52.

Keys:
  1 / 2 / 3, tab   switch between CVSS 3.1, CVSS 4.0 and About
  arrows, hjkl     move between metrics and values
  enter, space     select the focused value
  r                reset the current standard to defaults
  e                edit the vector text (enter saves, esc cancels)
  c                copy the vector
  q, ctrl+c        quit

Selections are saved to the state backend and restored on the next launch.
Warnings raised while the popup is open are printed after it closes.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("tui requires an interactive terminal")
		}

		logger := &contract.BufferedLogger{}
		defer logger.Flush(os.Stderr)

		opts := []session.Option{session.WithLogger(logger), session.WithFormat(cfg.StateFormat)}
		if history := storeManager.GetHistoryStore(); history != nil {
			opts = append(opts, session.WithHistory(history))
		}
		sess, err := session.Open(rootCtx, registry, storeManager.GetStateStore(), opts...)
		if err != nil {
			return err
		}

		runErr := tui.Run(rootCtx, sess, os.Stdin, os.Stdout)

		ctx, cancel := context.WithTimeout(rootCtx, closeTimeout)
		defer cancel()
		if err := sess.Close(ctx); err != nil {
			logger.Warn("saving popup state", err)
		}
		return runErr
	},
}

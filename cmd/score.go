package cmd

import (
	"github.com/huangsam/cvsspop/core/session"
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/internal/outwriter"
	"github.com/spf13/cobra"
)

// scoreCmd evaluates one vector string without touching the popup state.
var scoreCmd = &cobra.Command{
	Use:   "score <vector>",
	Short: "Score a CVSS 3.1 or 4.0 vector string.",
	Long: `Parse a vector string, complete any missing base metrics from the defaults, and print the score, severity and normalized vector.

The standard is picked from the prefix: CVSS:3.1/ or CVSS:4.0/. Extra or unknown tokens are ignored.
A known metric with an illegal value scores as Error and the command exits non-zero.

Examples:
  # Score a full CVSS 3.1 vector
  cvsspop score "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"

  # Score a partial CVSS 4.0 vector as JSON
  cvsspop score "CVSS:4.0/VC:H/VI:H" --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: configSetup,
	Run: func(_ *cobra.Command, args []string) {
		ev, err := session.Score(registry, args[0])
		if err != nil {
			contract.LogFatal("Cannot score vector", err)
		}
		if err := outwriter.NewOutWriter().WriteScore(ev, cfg); err != nil {
			contract.LogFatal("Cannot write score", err)
		}
	},
}

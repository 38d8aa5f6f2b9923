package cmd

import (
	"github.com/huangsam/cvsspop/internal/contract"
	"github.com/huangsam/cvsspop/internal/outwriter"
	"github.com/huangsam/cvsspop/schema"
	"github.com/spf13/cobra"
)

// metricsCmd displays the base metric schemas offered by the popup.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the base metrics and their legal values.",
	Long: `Print every base metric offered by the popup, in display order, with its legal value codes and help text.

Use --standard to limit the listing to cvss3 (3.1) or cvss4 (4.0). Without it both standards are shown.

Examples:
  # Show both standards
  cvsspop metrics

  # Show only CVSS 4.0 as CSV
  cvsspop metrics --standard cvss4 --output csv`,
	PreRunE: configSetup,
	Run: func(_ *cobra.Command, _ []string) {
		standards := schema.AllStandards
		if input.Standard != "" {
			standards = []schema.Standard{cfg.Standard}
		}

		schemas := make([]*schema.MetricSchema, 0, len(standards))
		for _, std := range standards {
			if ms, ok := schema.SchemaFor(std); ok {
				schemas = append(schemas, ms)
			}
		}
		if err := outwriter.NewOutWriter().WriteMetrics(schemas, cfg); err != nil {
			contract.LogFatal("Cannot write metrics", err)
		}
	},
}

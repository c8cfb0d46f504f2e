package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Derive association rules with support, confidence and lift",
	Long: `Derive directional rules A -> B from the frequent pairs.

  support    = pair count / baskets
  confidence = pair count / count(A)
  lift       = confidence / (count(B) / baskets)

Rules below --min-confidence are dropped. The rest are ordered by
confidence, then lift, then item names.`,
	Example: `  basketlift rules
  basketlift rules --min-support 0.01 --min-confidence 0.1 --limit 30`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	addSourceFlags(rulesCmd)
	addThresholdFlags(rulesCmd, true)
	addLimitFlag(rulesCmd, "limit", "number of rules to show, 0 for all (default from config: 15)")
	RootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	analysis, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	limit := limitFor(cmd, "limit", settings.Output.RuleLimit)
	out := cmd.OutOrStdout()
	if !jsonOutput() {
		fmt.Fprintf(out, "%d baskets · min support %s · min confidence %s\n\n",
			analysis.TotalBaskets,
			output.FormatPercent(analysis.MinSupport),
			output.FormatPercent(analysis.MinConfidence))
	}
	return render(out, output.RenderRuleTable(analysis.Rules, limit), output.RuleViews(analysis.Rules, limit))
}

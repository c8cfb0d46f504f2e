package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <item>",
	Short: "Suggest items bought together with an item",
	Long: `List the rules whose antecedent is the given item, strongest first.

An item that never appears in the data, or that has no rules at the current
thresholds, prints a message rather than failing.`,
	Example: `  basketlift recommend "whole milk"
  basketlift recommend yogurt --min-confidence 0.1 --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	addSourceFlags(recommendCmd)
	addThresholdFlags(recommendCmd, true)
	addLimitFlag(recommendCmd, "limit", "number of recommendations, 0 for all (default from config: 5)")
	RootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	item := args[0]

	analysis, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	recs := analyzer.Recommend(analysis.Rules, item)
	limit := limitFor(cmd, "limit", settings.Output.RecommendLimit)
	out := cmd.OutOrStdout()

	if jsonOutput() {
		return output.WriteJSON(out, output.RuleViews(recs, limit))
	}

	if _, known := analysis.Frequencies[item]; !known {
		fmt.Fprintf(out, "Item %q does not appear in the data.\n", item)
		return nil
	}
	fmt.Fprint(out, output.RenderRecommendations(item, recs, limit))
	return nil
}

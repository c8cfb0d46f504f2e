package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/output"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List item pairs that reach the support threshold",
	Long: `Count how often each pair of distinct items is bought together and keep
the pairs whose count reaches floor(min-support × baskets). Pairs are
unordered and ranked by count.`,
	Example: `  basketlift pairs --min-support 0.01
  basketlift pairs --limit 0 --format json`,
	Args: cobra.NoArgs,
	RunE: runPairs,
}

func init() {
	addSourceFlags(pairsCmd)
	addThresholdFlags(pairsCmd, false)
	addLimitFlag(pairsCmd, "limit", "number of pairs to show, 0 for all")
	RootCmd.AddCommand(pairsCmd)
}

func runPairs(cmd *cobra.Command, args []string) error {
	analysis, err := runAnalysis(cmd)
	if err != nil {
		return err
	}

	limit := limitFor(cmd, "limit", 0)
	return render(cmd.OutOrStdout(),
		output.RenderPairTable(analysis.Cooccurrence, limit),
		output.PairViews(analysis.Cooccurrence, limit))
}

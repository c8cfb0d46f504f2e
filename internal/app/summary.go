package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show basket count, distinct items and items per basket",
	Long: `Summarize the basket collection: how many baskets there are, how many
distinct items appear, the total number of item occurrences and the mean
number of items per basket.`,
	Example: `  basketlift summary
  basketlift summary --csv Groceries_dataset.csv --format json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	addSourceFlags(summaryCmd)
	RootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	baskets, err := loadBaskets(cmd)
	if err != nil {
		return err
	}

	s, err := analyzer.Summarize(baskets)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), output.RenderSummary(s), output.SummaryView(s))
}

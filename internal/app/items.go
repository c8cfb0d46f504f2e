package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Rank the most frequently bought items",
	Long: `Count every item occurrence across all baskets and list the most frequent
items. The share column is the count divided by the number of baskets.`,
	Example: `  basketlift items
  basketlift items --top 25`,
	Args: cobra.NoArgs,
	RunE: runItems,
}

func init() {
	addSourceFlags(itemsCmd)
	addLimitFlag(itemsCmd, "top", "number of items to show, 0 for all (default from config: 10)")
	RootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	baskets, err := loadBaskets(cmd)
	if err != nil {
		return err
	}

	freq := analyzer.CountItems(baskets)
	top := analyzer.TopItems(freq, limitFor(cmd, "top", settings.Output.TopItems))

	return render(cmd.OutOrStdout(), output.RenderItemTable(top, len(baskets)), output.ItemViews(top))
}

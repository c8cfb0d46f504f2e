package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/output"
)

var basketsCmd = &cobra.Command{
	Use:   "baskets",
	Short: "List the first baskets",
	Long: `Print baskets in key order with their items in recorded order.
Useful for checking that the key and item columns were picked up correctly.`,
	Example: `  basketlift baskets
  basketlift baskets --limit 20 --csv Groceries_dataset.csv`,
	Args: cobra.NoArgs,
	RunE: runBaskets,
}

func init() {
	addSourceFlags(basketsCmd)
	addLimitFlag(basketsCmd, "limit", "number of baskets to show, 0 for all (default from config: 5)")
	RootCmd.AddCommand(basketsCmd)
}

func runBaskets(cmd *cobra.Command, args []string) error {
	baskets, err := loadBaskets(cmd)
	if err != nil {
		return err
	}

	limit := limitFor(cmd, "limit", settings.Output.BasketLimit)
	shown := baskets
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	return render(cmd.OutOrStdout(), output.RenderBasketList(baskets, limit), shown)
}

package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/output"
)

var explainCmd = &cobra.Command{
	Use:   "explain <antecedent> <consequent>",
	Short: "Show how a rule's support, confidence and lift are computed",
	Long: `Walk through the counts behind the rule antecedent -> consequent and show
whether it passes the support and confidence thresholds. Works for rules
that were filtered out, which helps when tuning thresholds.`,
	Example: `  basketlift explain "whole milk" yogurt
  basketlift explain sausage "rolls/buns" --min-support 0.01`,
	Args: cobra.ExactArgs(2),
	RunE: runExplain,
}

func init() {
	addSourceFlags(explainCmd)
	addThresholdFlags(explainCmd, true)
	RootCmd.AddCommand(explainCmd)
}

// explainJSON is the --format json shape of explain.
type explainJSON struct {
	Antecedent      string  `json:"antecedent"`
	Consequent      string  `json:"consequent"`
	TotalBaskets    int     `json:"total_baskets"`
	AntecedentCount int     `json:"antecedent_count"`
	ConsequentCount int     `json:"consequent_count"`
	PairCount       int     `json:"pair_count"`
	MinCount        int     `json:"min_count"`
	Support         float64 `json:"support"`
	Confidence      float64 `json:"confidence"`
	Lift            float64 `json:"lift"`
	MeetsSupport    bool    `json:"meets_support"`
	MeetsConfidence bool    `json:"meets_confidence"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	baskets, err := loadBaskets(cmd)
	if err != nil {
		return err
	}

	a := analyzer.New(analysisOptions(cmd), logging.Logger())
	e, err := a.Explain(baskets, args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return output.WriteJSON(out, explainJSON{
			Antecedent:      e.Antecedent,
			Consequent:      e.Consequent,
			TotalBaskets:    e.TotalBaskets,
			AntecedentCount: e.AntecedentCount,
			ConsequentCount: e.ConsequentCount,
			PairCount:       e.PairCount,
			MinCount:        e.MinCount,
			Support:         e.Support,
			Confidence:      e.Confidence,
			Lift:            e.Lift,
			MeetsSupport:    e.MeetsSupport(),
			MeetsConfidence: e.MeetsConfidence(),
		})
	}

	renderExplanation(out, e)
	return nil
}

func renderExplanation(w io.Writer, e analyzer.Explanation) {
	fmt.Fprintf(w, "Rule: %s -> %s\n\n", e.Antecedent, e.Consequent)

	const label = "  %-20s"
	fmt.Fprintf(w, label+"%d\n", "Baskets:", e.TotalBaskets)
	fmt.Fprintf(w, label+"%d\n", "count("+e.Antecedent+"):", e.AntecedentCount)
	fmt.Fprintf(w, label+"%d\n", "count("+e.Consequent+"):", e.ConsequentCount)
	fmt.Fprintf(w, label+"%d\n\n", "Together:", e.PairCount)

	if e.AntecedentCount == 0 {
		fmt.Fprintf(w, "%q does not appear in the data, so the rule is undefined.\n", e.Antecedent)
		return
	}

	fmt.Fprintf(w, label+"%d / %d = %s\n", "Support:", e.PairCount, e.TotalBaskets, output.FormatPercent(e.Support))
	fmt.Fprintf(w, label+"%d / %d = %s\n", "Confidence:", e.PairCount, e.AntecedentCount, output.FormatPercent(e.Confidence))
	if e.ConsequentCount > 0 {
		fmt.Fprintf(w, label+"%s / (%d / %d) = %.2f\n", "Lift:",
			output.FormatPercent(e.Confidence), e.ConsequentCount, e.TotalBaskets, e.Lift)
	}
	fmt.Fprintln(w)

	check := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}
	fmt.Fprintf(w, "%s support: needs %d co-occurrences (min support %s), has %d\n",
		check(e.MeetsSupport()), e.MinCount, output.FormatPercent(e.MinSupport), e.PairCount)
	fmt.Fprintf(w, "%s confidence: needs %s, has %s\n",
		check(e.MeetsConfidence()), output.FormatPercent(e.MinConfidence), output.FormatPercent(e.Confidence))

	if e.MeetsSupport() && e.MeetsConfidence() {
		fmt.Fprintln(w, "\nThe rule is reported by 'basketlift rules'.")
	} else {
		fmt.Fprintln(w, "\nThe rule is filtered out at these thresholds.")
	}
}

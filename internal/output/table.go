// Package output provides terminal output utilities for basketlift.
//
// This package includes:
//   - Table rendering for summaries, baskets, item rankings, pairs and rules
//   - JSON rendering of the same data for scripting
//   - Progress bars and spinners for imports
//
// Table functions return strings built with fixed-width columns. Lift values
// are colored when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// ANSI color codes for lift display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// FormatPercent renders a ratio in [0,1] as a percentage, e.g. 0.0523 -> "5.23%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// RenderSummary renders the headline numbers for a basket collection.
func RenderSummary(s analyzer.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-22s %d\n", "Baskets:", s.Baskets))
	sb.WriteString(fmt.Sprintf("%-22s %d\n", "Distinct items:", s.DistinctItems))
	sb.WriteString(fmt.Sprintf("%-22s %d\n", "Item occurrences:", s.TotalItems))
	sb.WriteString(fmt.Sprintf("%-22s %.2f\n", "Items per basket:", s.ItemsPerBasket))

	return sb.String()
}

// RenderBasketList renders the first limit baskets, one per line.
// limit <= 0 renders all of them.
func RenderBasketList(baskets []analyzer.Basket, limit int) string {
	if len(baskets) == 0 {
		return "No baskets found.\n"
	}

	shown := baskets
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %-6s %s\n", "#", "Items", "Contents"))
	sb.WriteString(strings.Repeat("─", 60))
	sb.WriteString("\n")

	for i, b := range shown {
		sb.WriteString(fmt.Sprintf("%-6d %-6d %s\n", i+1, len(b), strings.Join(b, ", ")))
	}

	if len(shown) < len(baskets) {
		sb.WriteString(fmt.Sprintf("\n%s\n", colorize(colorGray,
			fmt.Sprintf("Showing %d of %d baskets", len(shown), len(baskets)))))
	}

	return sb.String()
}

// RenderItemTable renders a popularity ranking. totalBaskets is used for the
// share column; pass 0 to omit it.
func RenderItemTable(items []analyzer.ItemCount, totalBaskets int) string {
	if len(items) == 0 {
		return "No items found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-4s %-28s %8s", "Rank", "Item", "Count"))
	if totalBaskets > 0 {
		sb.WriteString(fmt.Sprintf(" %10s", "Share"))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 53))
	sb.WriteString("\n")

	for i, ic := range items {
		sb.WriteString(fmt.Sprintf("%-4d %-28s %8d", i+1, truncate(ic.Item, 28), ic.Count))
		if totalBaskets > 0 {
			sb.WriteString(fmt.Sprintf(" %10s", FormatPercent(float64(ic.Count)/float64(totalBaskets))))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderPairTable renders the co-occurrence table ranked by count.
// limit <= 0 renders every pair.
func RenderPairTable(co analyzer.Cooccurrence, limit int) string {
	if len(co) == 0 {
		return "No item pairs reach the support threshold.\n"
	}

	ranked := co.Ranked()
	total := len(ranked)
	if limit > 0 && limit < total {
		ranked = ranked[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %-24s %8s %10s\n", "Item A", "Item B", "Count", "Support"))
	sb.WriteString(strings.Repeat("─", 69))
	sb.WriteString("\n")

	for _, e := range ranked {
		sb.WriteString(fmt.Sprintf("%-24s %-24s %8d %10s\n",
			truncate(e.A, 24),
			truncate(e.B, 24),
			e.Count,
			FormatPercent(e.Support)))
	}

	if len(ranked) < total {
		sb.WriteString(fmt.Sprintf("\n%s\n", colorize(colorGray,
			fmt.Sprintf("Showing %d of %d pairs", len(ranked), total))))
	}

	return sb.String()
}

// RenderRuleTable renders rules in the order given. limit <= 0 renders all.
// Note: Does not sort - expects rules to be pre-sorted by caller.
func RenderRuleTable(rules []analyzer.Rule, limit int) string {
	if len(rules) == 0 {
		return "No rules meet the support and confidence thresholds.\n"
	}

	shown := rules
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-22s    %-22s %9s %11s %7s\n",
		"Antecedent", "Consequent", "Support", "Confidence", "Lift"))
	sb.WriteString(strings.Repeat("─", 78))
	sb.WriteString("\n")

	for _, r := range shown {
		sb.WriteString(fmt.Sprintf("%-22s -> %-22s %9s %11s %s\n",
			truncate(r.Antecedent, 22),
			truncate(r.Consequent, 22),
			FormatPercent(r.Support),
			FormatPercent(r.Confidence),
			formatLift(r.Lift)))
	}

	if len(shown) < len(rules) {
		sb.WriteString(fmt.Sprintf("\n%s\n", colorize(colorGray,
			fmt.Sprintf("Showing %d of %d rules", len(shown), len(rules)))))
	}

	return sb.String()
}

// RenderRecommendations renders what to suggest alongside item.
func RenderRecommendations(item string, rules []analyzer.Rule, limit int) string {
	if len(rules) == 0 {
		return fmt.Sprintf("No recommendations for %q at the current thresholds.\n", item)
	}

	shown := rules
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Customers who bought %q also bought:\n\n", item))
	sb.WriteString(fmt.Sprintf("%-4s %-28s %11s %7s\n", "Rank", "Item", "Confidence", "Lift"))
	sb.WriteString(strings.Repeat("─", 53))
	sb.WriteString("\n")

	for i, r := range shown {
		sb.WriteString(fmt.Sprintf("%-4d %-28s %11s %s\n",
			i+1,
			truncate(r.Consequent, 28),
			FormatPercent(r.Confidence),
			formatLift(r.Lift)))
	}

	return sb.String()
}

// RenderDatasetTable renders the datasets held in the store.
func RenderDatasetTable(infos []*store.DatasetInfo) string {
	if len(infos) == 0 {
		return "No datasets imported.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-16s %8s %8s %-16s %s\n", "Dataset", "Rows", "Baskets", "Imported", "Source"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")

	for _, info := range infos {
		imported, source := "unknown", ""
		if info.LastImport != nil {
			imported = formatRelativeTime(info.LastImport.ImportedAt)
			source = info.LastImport.SourcePath
		}
		sb.WriteString(fmt.Sprintf("%-16s %8d %8d %-16s %s\n",
			truncate(info.Name, 16),
			info.Rows,
			info.Baskets,
			imported,
			source))
	}

	return sb.String()
}

// formatLift pads a lift value to seven columns and colors it: green above
// 1, red below 1, gray at independence.
func formatLift(lift float64) string {
	text := fmt.Sprintf("%7.2f", lift)
	switch {
	case math.Abs(lift-1) < 0.005:
		return colorize(colorGray, text)
	case lift > 1:
		return colorize(colorGreen, text)
	default:
		return colorize(colorRed, text)
	}
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// SummaryJSON is the --format json shape of summary.
type SummaryJSON struct {
	Baskets        int     `json:"baskets"`
	DistinctItems  int     `json:"distinct_items"`
	TotalItems     int     `json:"total_items"`
	ItemsPerBasket float64 `json:"items_per_basket"`
}

// ItemJSON is one row of the items ranking.
type ItemJSON struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// PairJSON is one co-occurring pair. A sorts before B.
type PairJSON struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Count   int     `json:"count"`
	Support float64 `json:"support"`
}

// RuleJSON is one directional rule, used by rules, recommend and watch.
type RuleJSON struct {
	Antecedent string  `json:"antecedent"`
	Consequent string  `json:"consequent"`
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
}

// DatasetJSON describes a stored dataset. The import fields are empty when
// no import has been recorded.
type DatasetJSON struct {
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	Baskets    int    `json:"baskets"`
	SourcePath string `json:"source_path,omitempty"`
	ImportedAt string `json:"imported_at,omitempty"`
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// SummaryView converts a summary for JSON output.
func SummaryView(s analyzer.Summary) SummaryJSON {
	return SummaryJSON{
		Baskets:        s.Baskets,
		DistinctItems:  s.DistinctItems,
		TotalItems:     s.TotalItems,
		ItemsPerBasket: s.ItemsPerBasket,
	}
}

// ItemViews converts an item ranking for JSON output.
func ItemViews(items []analyzer.ItemCount) []ItemJSON {
	views := make([]ItemJSON, len(items))
	for i, ic := range items {
		views[i] = ItemJSON{Item: ic.Item, Count: ic.Count}
	}
	return views
}

// PairViews converts the co-occurrence table, ranked by count, for JSON output.
func PairViews(co analyzer.Cooccurrence, limit int) []PairJSON {
	ranked := co.Ranked()
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	views := make([]PairJSON, len(ranked))
	for i, e := range ranked {
		views[i] = PairJSON{A: e.A, B: e.B, Count: e.Count, Support: e.Support}
	}
	return views
}

// RuleViews converts the first limit rules for JSON output. limit <= 0 keeps all.
func RuleViews(rules []analyzer.Rule, limit int) []RuleJSON {
	if limit > 0 && limit < len(rules) {
		rules = rules[:limit]
	}
	views := make([]RuleJSON, len(rules))
	for i, r := range rules {
		views[i] = RuleJSON{
			Antecedent: r.Antecedent,
			Consequent: r.Consequent,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		}
	}
	return views
}

// DatasetViews converts store datasets for JSON output.
func DatasetViews(infos []*store.DatasetInfo) []DatasetJSON {
	views := make([]DatasetJSON, len(infos))
	for i, info := range infos {
		views[i] = DatasetJSON{Name: info.Name, Rows: info.Rows, Baskets: info.Baskets}
		if info.LastImport != nil {
			views[i].SourcePath = info.LastImport.SourcePath
			views[i].ImportedAt = info.LastImport.ImportedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return views
}

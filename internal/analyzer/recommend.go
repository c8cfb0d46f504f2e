package analyzer

// Recommend returns the rules whose antecedent is item, in their input order.
// An item with no rules yields an empty, non-nil slice.
func Recommend(rules []Rule, item Item) []Rule {
	matches := make([]Rule, 0)
	for _, r := range rules {
		if r.Antecedent == item {
			matches = append(matches, r)
		}
	}
	return matches
}

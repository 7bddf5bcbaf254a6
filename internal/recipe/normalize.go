package recipe

import "strings"

// ParseIngredientList splits a comma-separated ingredient list.
// Entries are trimmed, blanks are dropped and duplicates keep their first position.
func ParseIngredientList(raw string) []string {
	return NormalizeIngredients(strings.Split(raw, ","))
}

// NormalizeIngredients applies the same trimming and de-duplication to an already split list.
// The result is never nil.
func NormalizeIngredients(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

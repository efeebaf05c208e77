package expense

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter returns the subsequence of records whose title contains term
// case-insensitively (empty term matches all) and whose category matches
// (CategoryFilterAll matches all). Input order is preserved; the input
// slice is never modified.
func Filter(records []Record, term string, category Category) []Record {
	needle := strings.ToLower(term)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Title), needle) {
			continue
		}
		if category != CategoryFilterAll && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SuggestTitles returns up to max distinct record titles ranked by edit
// distance to term, closest first. Used to offer "did you mean" hints when
// a search produces no matches.
func SuggestTitles(records []Record, term string, max int) []string {
	if term == "" || max <= 0 {
		return nil
	}
	needle := strings.ToLower(term)

	type candidate struct {
		title string
		dist  int
	}
	seen := map[string]struct{}{}
	var candidates []candidate
	for _, r := range records {
		lower := strings.ToLower(r.Title)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		candidates = append(candidates, candidate{
			title: r.Title,
			dist:  levenshtein.ComputeDistance(needle, lower),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.title)
	}
	return out
}

package match

import "sort"

const (
	// DefaultMinSimilarity is the lowest similarity a suggestion may have.
	DefaultMinSimilarity = 0.6
	// DefaultMaxSuggestions caps the number of suggestions returned.
	DefaultMaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to DefaultMaxSuggestions known names similar to name,
// best first. Ties are broken alphabetically for stable output.
func Suggest(name string, known []string) []string {
	var cands []scored

	for _, k := range known {
		if k == name {
			continue
		}

		if s := Similarity(name, k); s >= DefaultMinSimilarity {
			cands = append(cands, scored{name: k, score: s})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}

		return cands[i].name < cands[j].name
	})

	if len(cands) > DefaultMaxSuggestions {
		cands = cands[:DefaultMaxSuggestions]
	}

	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.name)
	}

	return out
}

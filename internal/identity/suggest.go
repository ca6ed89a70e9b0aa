package identity

import (
	"sort"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// Suggestion pairs a name that could not be matched with its closest corpus
// entry. Suggestions are for operators reviewing the corpus, they are never
// used as matches.
type Suggestion struct {
	Teacher   string
	Candidate catalog.Rating
	Score     float64
}

// Suggest finds the corpus entry most similar to each teacher by
// Jaro-Winkler distance and keeps the ones scoring at least threshold,
// best scores first.
func Suggest(teachers []string, corpus []catalog.Rating, threshold float64) []Suggestion {
	var out []Suggestion
	for _, teacher := range teachers {
		name := textutil.NormalizeName(teacher)
		if textutil.IsPlaceholder(name) {
			continue
		}

		var best Suggestion
		for _, candidate := range corpus {
			score := matchr.JaroWinkler(name, textutil.NormalizeName(candidate.FullName()), false)
			if score > best.Score {
				best = Suggestion{Teacher: teacher, Candidate: candidate, Score: score}
			}
		}
		if best.Score >= threshold && best.Score > 0 {
			out = append(out, best)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Unmatched returns the distinct teachers Match would leave out, placeholders excluded.
func Unmatched(teachers []string, corpus []catalog.Rating) []string {
	m := NewMatcher(corpus)
	seen := map[string]bool{}
	var out []string
	for _, teacher := range teachers {
		if seen[teacher] || textutil.IsPlaceholder(teacher) {
			continue
		}
		seen[teacher] = true
		if _, ok := m.Lookup(teacher); !ok {
			out = append(out, teacher)
		}
	}
	return out
}

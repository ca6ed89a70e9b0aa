// Package identity resolves instructor names from section listings against an
// external ratings corpus. Matching happens at read time and never changes
// either side's names.
package identity

import (
	"sort"
	"strings"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/lib/textutil"
)

type Tier int

const (
	TierNone Tier = iota
	// the observed name equals a corpus full name, middle name included
	TierExact
	// the observed first and last tokens equal a corpus first and last name
	TierFirstLast
	// the first and last tokens of the shorter name prefix those of the longer one
	TierPrefix
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFirstLast:
		return "first-last"
	case TierPrefix:
		return "prefix"
	}
	return "none"
}

// Result is the outcome of matching one observed name.
type Result struct {
	Teacher string
	Rating  catalog.Rating
	Tier    Tier
}

type entry struct {
	full   string
	first  string
	last   string
	rating catalog.Rating
}

// Matcher indexes a ratings corpus for repeated lookups.
type Matcher struct {
	full      map[string]catalog.Rating
	firstLast map[string]catalog.Rating
	entries   []entry
}

func firstLast(tokens []string) string {
	return tokens[0] + " " + tokens[len(tokens)-1]
}

// NewMatcher indexes corpus. When two entries share a name the one with the
// smaller id wins, so lookups do not depend on the corpus order.
func NewMatcher(corpus []catalog.Rating) Matcher {
	sorted := make([]catalog.Rating, len(corpus))
	copy(sorted, corpus)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	m := Matcher{
		full:      map[string]catalog.Rating{},
		firstLast: map[string]catalog.Rating{},
	}
	for _, r := range sorted {
		full := textutil.CollapseSpace(r.FullName())
		if full == "" {
			continue
		}
		if _, ok := m.full[full]; !ok {
			m.full[full] = r
		}

		first := textutil.CollapseSpace(r.FirstName)
		last := textutil.CollapseSpace(r.LastName)
		if first != "" && last != "" {
			key := first + " " + last
			if _, ok := m.firstLast[key]; !ok {
				m.firstLast[key] = r
			}
		}

		tokens := strings.Fields(full)
		m.entries = append(m.entries, entry{
			full:   full,
			first:  strings.ToLower(tokens[0]),
			last:   strings.ToLower(tokens[len(tokens)-1]),
			rating: r,
		})
	}
	return m
}

// Lookup applies the matching tiers in order and returns the first hit.
func (m Matcher) Lookup(teacher string) (Result, bool) {
	name := textutil.CollapseSpace(teacher)
	if name == "" {
		return Result{}, false
	}

	if r, ok := m.full[name]; ok {
		return Result{Teacher: teacher, Rating: r, Tier: TierExact}, true
	}

	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return Result{}, false
	}

	key := firstLast(tokens)
	if r, ok := m.full[key]; ok {
		return Result{Teacher: teacher, Rating: r, Tier: TierFirstLast}, true
	}
	if r, ok := m.firstLast[key]; ok {
		return Result{Teacher: teacher, Rating: r, Tier: TierFirstLast}, true
	}

	first := strings.ToLower(tokens[0])
	last := strings.ToLower(tokens[len(tokens)-1])
	for _, e := range m.entries {
		refFirst, refLast, otherFirst, otherLast := e.first, e.last, first, last
		if len(name) < len(e.full) {
			refFirst, refLast, otherFirst, otherLast = first, last, e.first, e.last
		}
		if strings.HasPrefix(otherFirst, refFirst) && strings.HasPrefix(otherLast, refLast) {
			return Result{Teacher: teacher, Rating: e.rating, Tier: TierPrefix}, true
		}
	}
	return Result{}, false
}

// MatchDetailed looks up every distinct teacher and returns the hits in input order.
func MatchDetailed(teachers []string, corpus []catalog.Rating) []Result {
	m := NewMatcher(corpus)
	seen := map[string]bool{}
	var out []Result
	for _, teacher := range teachers {
		if seen[teacher] {
			continue
		}
		seen[teacher] = true
		if res, ok := m.Lookup(teacher); ok {
			out = append(out, res)
		}
	}
	return out
}

// Match returns teacher -> rating for every teacher that could be matched,
// unmatched teachers are left out.
func Match(teachers []string, corpus []catalog.Rating) map[string]catalog.Rating {
	out := map[string]catalog.Rating{}
	for _, res := range MatchDetailed(teachers, corpus) {
		out[res.Teacher] = res.Rating
	}
	return out
}

package identity

import (
	"testing"

	"schedulestorm-backend/internal/catalog"

	"github.com/stretchr/testify/require"
)

var johnSmith = catalog.Rating{
	ID:         "1",
	FirstName:  "John",
	MiddleName: "Michael",
	LastName:   "Smith",
	Rating:     4.1,
	NumRatings: 20,
}

var jonathanSmith = catalog.Rating{
	ID:        "2",
	FirstName: "Jonathan",
	LastName:  "Smith",
	Rating:    3.2,
}

func TestMatchTiers(t *testing.T) {
	cases := []struct {
		teacher string
		corpus  []catalog.Rating
		tier    Tier
		id      string
	}{
		{"John Michael Smith", []catalog.Rating{johnSmith}, TierExact, "1"},
		{"John Smith", []catalog.Rating{johnSmith}, TierFirstLast, "1"},
		{"John  A.  Smith", []catalog.Rating{johnSmith}, TierFirstLast, "1"},
		{"Jon Smith", []catalog.Rating{{ID: "3", FirstName: "Jonathan", LastName: "Smithson"}}, TierPrefix, "3"},
		{"Jonathan Smith", []catalog.Rating{{ID: "4", FirstName: "Jon", LastName: "Smith"}}, TierPrefix, "4"},
		{"Jon Smithson", []catalog.Rating{jonathanSmith}, TierNone, ""},
		{"Jonathan Smith", []catalog.Rating{{ID: "5", FirstName: "Jon", LastName: "Smithson"}}, TierNone, ""},
		{"Smith", []catalog.Rating{johnSmith}, TierNone, ""},
	}

	for _, c := range cases {
		m := NewMatcher(c.corpus)
		res, ok := m.Lookup(c.teacher)
		if c.tier == TierNone {
			require.False(t, ok, c.teacher)
			continue
		}
		require.True(t, ok, c.teacher)
		require.Equal(t, c.tier, res.Tier, c.teacher)
		require.Equal(t, c.id, res.Rating.ID, c.teacher)
	}
}

func TestMatchPrefersEarlierTier(t *testing.T) {
	// "John Smith" would also prefix-match Johnathan Smithers, the first-last tier wins
	corpus := []catalog.Rating{
		{ID: "0", FirstName: "Johnathan", LastName: "Smithers"},
		johnSmith,
	}
	res, ok := NewMatcher(corpus).Lookup("John Smith")
	require.True(t, ok)
	require.Equal(t, TierFirstLast, res.Tier)
	require.Equal(t, "1", res.Rating.ID)
}

func TestMatchOmitsUnmatched(t *testing.T) {
	ratings := Match(
		[]string{"John Smith", "Ada Lovelace", "John Smith"},
		[]catalog.Rating{johnSmith},
	)
	require.Len(t, ratings, 1)
	require.Equal(t, "1", ratings["John Smith"].ID)
}

func TestSuggest(t *testing.T) {
	corpus := []catalog.Rating{johnSmith, jonathanSmith}
	unmatched := Unmatched([]string{"Jon Smithson", "John Smith", "Staff", "Zed Quux"}, corpus)
	require.Equal(t, []string{"Jon Smithson", "Zed Quux"}, unmatched)

	suggestions := Suggest(unmatched, corpus, 0.75)
	require.Len(t, suggestions, 1)
	require.Equal(t, "Jon Smithson", suggestions[0].Teacher)
	require.Equal(t, "2", suggestions[0].Candidate.ID)
}

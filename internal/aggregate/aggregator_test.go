package aggregate

import (
	"context"
	"encoding/json"
	"testing"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

type staticStatus map[string]bool

func (s staticStatus) IsScraping(uni string) bool {
	return s[uni]
}

func section(id, subject, coursenum string, teachers ...string) catalog.ClassSection {
	return catalog.ClassSection{
		ID:        id,
		Term:      "2171",
		Subject:   subject,
		Coursenum: coursenum,
		Section:   "01",
		Type:      "LEC",
		Status:    catalog.StatusOpen,
		Teachers:  teachers,
		Rooms:     []string{"ST 140"},
		Times:     []string{"MoWeFr 10:00AM - 10:50AM"},
		Location:  "Main Campus",
		Group:     "1",
	}
}

func setup(t *testing.T) (catalog.Store, Aggregator) {
	ctx := context.Background()
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "aggregate"})
	t.Cleanup(cleanup)

	store := catalog.NewStore(res.DB, res.Clock, res.Tel)
	lifecycle := catalog.NewLifecycle(store)
	for _, uni := range []string{"UCalgary", "ULeth"} {
		err := lifecycle.SetActiveTerms(ctx, uni, []catalog.Term{{ID: "2171", Name: "Winter 2017"}})
		require.NoError(t, err)
	}
	require.NoError(t, store.UpsertTerm(ctx, "UCalgary", catalog.Term{ID: "2167", Name: "Fall 2016"}))

	agg := NewAggregator(store, []University{
		{ID: "UCalgary", Name: "University of Calgary", RatingsSourceID: "1416"},
		{ID: "ULeth", Name: "University of Lethbridge", RatingsSourceID: "1462"},
	}, staticStatus{"ULeth": true}, res.Tel)
	return store, agg
}

func TestGetCatalogCompleteness(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)

	_, err := store.UpsertSections(ctx, "ULeth", []catalog.ClassSection{
		section("1", "CPSC", "1620", "John Smith"),
		section("2", "CPSC", "1620", "Staff"),
		section("3", "CPSC", "2620", "N/A", "Ada Lovelace"),
	})
	require.NoError(t, err)
	require.NoError(t, store.UpsertCourseDescription(ctx, "ULeth", catalog.CourseDescription{
		Subject: "CPSC", Coursenum: "1620", Name: "Fundamentals of Programming I",
	}))
	require.NoError(t, store.UpsertSubject(ctx, "ULeth", catalog.Subject{Subject: "CPSC", Name: "Computer Science"}))
	_, err = store.UpsertRatings(ctx, "ULeth", []catalog.Rating{
		{ID: "7", FirstName: "John", MiddleName: "Michael", LastName: "Smith", Rating: 4.5},
	})
	require.NoError(t, err)

	result, err := agg.GetCatalog(ctx, "ULeth", "2171")
	require.NoError(t, err)
	require.Nil(t, result.ByFaculty)

	courses := result.BySubject["CPSC"]
	require.Len(t, courses, 2)
	require.Len(t, courses["1620"].Classes, 2)
	require.Len(t, courses["2620"].Classes, 1)
	require.Equal(t, "Fundamentals of Programming I", courses["1620"].Description.Value.Name)
	require.Nil(t, courses["2620"].Description.Value)

	require.Len(t, result.Ratings, 1)
	require.Equal(t, "7", result.Ratings["John Smith"].ID)
	require.Equal(t, map[string]string{"CPSC": "Computer Science"}, result.Subjects)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	var decoded map[string]map[string]map[string]json.RawMessage
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	require.Contains(t, top, "rmp")
	require.NoError(t, json.Unmarshal(top["classes"], &decoded))
	require.JSONEq(t, "false", string(decoded["CPSC"]["2620"]["description"]))
}

func TestGetCatalogFacultyGrouping(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)

	_, err := store.UpsertSections(ctx, "UCalgary", []catalog.ClassSection{
		section("1", "CPSC", "231", "Jonathan Hudson"),
		section("2", "HTST", "200", "Staff"),
	})
	require.NoError(t, err)
	require.NoError(t, store.UpsertSubject(ctx, "UCalgary", catalog.Subject{Subject: "CPSC", Faculty: "Science"}))

	result, err := agg.GetCatalog(ctx, "UCalgary", "2171")
	require.NoError(t, err)
	require.NotNil(t, result.ByFaculty)
	require.Contains(t, result.ByFaculty["Science"], "CPSC")
	require.Contains(t, result.ByFaculty[OtherFaculty], "HTST")
	require.Empty(t, result.Ratings)

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	var top struct {
		Classes map[string]map[string]map[string]json.RawMessage `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(raw, &top))
	require.Contains(t, top.Classes["Science"]["CPSC"], "231")
}

func TestGetCatalogUnknown(t *testing.T) {
	ctx := context.Background()
	_, agg := setup(t)

	_, err := agg.GetCatalog(ctx, "UAlberta", "2171")
	require.ErrorIs(t, err, ErrUnknownUniversity)
	_, err = agg.GetCatalog(ctx, "UCalgary", "9999")
	require.ErrorIs(t, err, ErrUnknownTerm)
	// known but disabled
	_, err = agg.GetCatalog(ctx, "UCalgary", "2167")
	require.ErrorIs(t, err, ErrUnknownTerm)
}

func TestListUniversities(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)

	require.NoError(t, store.UpsertSection(ctx, "UCalgary", section("1", "CPSC", "231", "Staff")))

	unis, err := agg.ListUniversities(ctx)
	require.NoError(t, err)
	require.Equal(t, UniversityInfo{
		Terms:     map[string]string{"2171": "Winter 2017"},
		Locations: []string{"Main Campus"},
		Name:      "University of Calgary",
		Rmp:       "1416",
		Scraping:  false,
	}, unis["UCalgary"])
	require.True(t, unis["ULeth"].Scraping)
	require.Equal(t, []string{}, unis["ULeth"].Locations)
}

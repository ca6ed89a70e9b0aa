package settings

import (
	"testing"
	"time"

	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/internal/sources/banner"
	"schedulestorm-backend/internal/sources/campusapi"
	"schedulestorm-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := Config{
		Port: 3000,
		Universities: map[string]UniversityConfig{
			"UCalgary": {Enabled: true, Scrape: true, ScrapeInterval: 3600, Source: SourceConfig{Kind: SourceBanner}},
			"ULeth":    {Enabled: true, ScrapeInterval: 0},
		},
	}
	require.NoError(t, cfg.Validate())

	cfg.Universities["UWaterloo"] = UniversityConfig{ScrapeInterval: -1, Source: SourceConfig{Kind: "ldap"}}
	err := cfg.Validate()
	require.ErrorContains(t, err, "universities.UWaterloo: scrapeinterval must not be negative")
	require.ErrorContains(t, err, `unknown source kind "ldap"`)

	cfg = Config{Universities: map[string]UniversityConfig{"MTRoyal": {Scrape: true}}}
	require.ErrorContains(t, cfg.Validate(), "scraping needs a source")
}

func TestReadModel(t *testing.T) {
	cfg := Config{Universities: map[string]UniversityConfig{
		"ULeth":    {FullName: "University of Lethbridge", Enabled: true, RmpID: "1462"},
		"UCalgary": {FullName: "University of Calgary", Enabled: true, RmpID: "1416"},
		"UAlberta": {FullName: "University of Alberta"},
	}}
	require.Equal(t, []string{"UCalgary", "ULeth"}, cfg.Enabled())
	require.Equal(t, []aggregate.University{
		{ID: "UCalgary", Name: "University of Calgary", RatingsSourceID: "1416"},
		{ID: "ULeth", Name: "University of Lethbridge", RatingsSourceID: "1462"},
	}, cfg.ReadModel())
}

func TestNewSource(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "settings"})
	defer cleanup()

	uni := UniversityConfig{ScrapeInterval: 90, Source: SourceConfig{Kind: SourceBanner, BaseUrl: "https://www.uleth.ca/bridge/"}}
	require.Equal(t, 90*time.Second, uni.Interval())
	src, err := uni.NewSource(res.Tel)
	require.NoError(t, err)
	require.IsType(t, banner.Source{}, src)

	uni.Source.Kind = SourceCampusApi
	src, err = uni.NewSource(res.Tel)
	require.NoError(t, err)
	require.IsType(t, campusapi.Source{}, src)

	uni.Source.Kind = "ldap"
	_, err = uni.NewSource(res.Tel)
	require.Error(t, err)
}

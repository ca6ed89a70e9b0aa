package banner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"sync/atomic"
	"testing"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func serveFile(t *testing.T, w http.ResponseWriter, name string) {
	content, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	w.Write(content)
}

type bannerServer struct {
	*httptest.Server
	failClasses atomic.Bool
}

func newBannerServer(t *testing.T) *bannerServer {
	srv := &bannerServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/bridge/"+pathTerms, func(w http.ResponseWriter, r *http.Request) {
		serveFile(t, w, "terms.html")
	})
	mux.HandleFunc("/bridge/"+pathSubjects, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.FormValue("p_term") == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		serveFile(t, w, "subjects.html")
	})
	mux.HandleFunc("/bridge/"+pathClasses, func(w http.ResponseWriter, r *http.Request) {
		if srv.failClasses.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		r.ParseForm()
		if slices.Contains(r.Form["sel_subj"], "CPSC") {
			serveFile(t, w, "classes_cpsc.html")
			return
		}
		serveFile(t, w, "classes_empty.html")
	})
	mux.HandleFunc("/courses.xml", func(w http.ResponseWriter, r *http.Request) {
		serveFile(t, w, "courses.xml")
	})
	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape(t *testing.T) {
	ctx := context.Background()
	srv := newBannerServer(t)

	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "banner",
	})
	defer cleanup()
	store := catalog.NewStore(res.DB, res.Clock, res.Tel)

	source, err := New(Config{
		BaseUrl:           srv.URL + "/bridge/",
		RequestsPerSecond: 100,
		DescriptionsUrl:   srv.URL + "/courses.xml",
	}, res.Tel)
	require.NoError(t, err)

	runner := ingest.NewRunner(ingest.RunnerOptions{
		Uni:    "ULeth",
		Source: source,
		Store:  store,
		Clock:  res.Clock,
		Tel:    res.Tel,
	})
	stats, err := runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"201730", "201720"}, stats.Terms)

	terms, err := catalog.NewLifecycle(store).ListActiveTerms(ctx, "ULeth")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"201730": "Fall 2017", "201720": "Summer 2017"}, terms)

	sections, err := store.ListSections(ctx, "ULeth", "201730")
	require.NoError(t, err)
	require.Len(t, sections, 3)

	desc, err := store.GetCourseDescription(ctx, "ULeth", "CPSC", "1620")
	require.NoError(t, err)
	require.Equal(t, "Fundamentals of Programming I", desc.Name)
	require.Equal(t, "3-0-2", desc.Extra["hours"])

	desc, err = store.GetCourseDescription(ctx, "ULeth", "CPSC", "2620")
	require.NoError(t, err)
	require.Equal(t, "Data Structures", desc.Name)

	locations, err := store.ListLocations(ctx, "ULeth")
	require.NoError(t, err)
	require.Equal(t, []string{"Lethbridge Campus"}, locations)
}

func TestScrapeFailedTermIsNotPruned(t *testing.T) {
	ctx := context.Background()
	srv := newBannerServer(t)

	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "banner",
	})
	defer cleanup()
	store := catalog.NewStore(res.DB, res.Clock, res.Tel)

	source, err := New(Config{
		BaseUrl:           srv.URL + "/bridge",
		RequestsPerSecond: 100,
	}, res.Tel)
	require.NoError(t, err)
	runner := ingest.NewRunner(ingest.RunnerOptions{
		Uni:    "ULeth",
		Source: source,
		Store:  store,
		Clock:  res.Clock,
		Tel:    res.Tel,
	})

	_, err = runner.Run(ctx)
	require.NoError(t, err)

	srv.failClasses.Store(true)
	stats, err := runner.Run(ctx)
	require.ErrorContains(t, err, "503")
	require.Empty(t, stats.Terms)

	sections, err := store.ListSections(ctx, "ULeth", "201730")
	require.NoError(t, err)
	require.Len(t, sections, 3)
}

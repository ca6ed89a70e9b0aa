package campusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/ingest"
	"schedulestorm-backend/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("content-type", "application/json")
	json.NewEncoder(w).Encode(v)
}

type campusServer struct {
	*httptest.Server
	lookups atomic.Int32
}

func newCampusServer(t *testing.T) *campusServer {
	srv := &campusServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/terms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []apiTerm{
			{ID: "1179", Name: "Fall 2017", Active: true},
			{ID: "1175", Name: "Spring 2017"},
		})
	})
	mux.HandleFunc("/codes/groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []apiGroup{{Code: "MAT", FullName: "Faculty of Mathematics"}})
	})
	mux.HandleFunc("/codes/subjects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []apiSubject{
			{Subject: "CS", Name: "Computer Science", Group: "MAT"},
			{Subject: "PHIL", Name: "Philosophy"},
		})
	})
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []apiCourse{{
			Subject:        "CS",
			CatalogNumber:  "135",
			Title:          "Designing Functional Programs",
			Description:    "An introduction to the fundamentals of computer science.",
			Units:          0.5,
			Antirequisites: "CS 115, 121",
		}})
	})
	mux.HandleFunc("/terms/1179/schedule", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []apiClass{
			{
				ClassNumber:        4567,
				Subject:            "CS",
				CatalogNumber:      "135",
				Section:            "LEC 001",
				Campus:             "UW U",
				EnrollmentCapacity: 90,
				EnrollmentTotal:    90,
				WaitingTotal:       3,
				Note:               "Lecture 001 take tutorial 101",
				Meetings: []apiMeeting{{
					StartTime:     "13:30",
					EndTime:       "14:20",
					Weekdays:      "MWF",
					Building:      "MC",
					Room:          "4020",
					InstructorIDs: []string{"bwbecker", "ghost"},
				}},
			},
			{
				ClassNumber:        4568,
				Subject:            "CS",
				CatalogNumber:      "135",
				Section:            "TUT 101",
				Campus:             "UW U",
				EnrollmentCapacity: 30,
				EnrollmentTotal:    12,
				Meetings: []apiMeeting{{
					StartTime:     "08:30",
					EndTime:       "09:20",
					Weekdays:      "F",
					InstructorIDs: []string{"bwbecker"},
				}},
			},
		})
	})
	mux.HandleFunc("/instructors/", func(w http.ResponseWriter, r *http.Request) {
		srv.lookups.Add(1)
		id := strings.TrimPrefix(r.URL.Path, "/instructors/")
		if id != "bwbecker" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, apiInstructor{ID: id, FirstName: "Byron", LastName: "Weber Becker"})
	})
	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape(t *testing.T) {
	ctx := context.Background()
	srv := newCampusServer(t)

	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "campusapi",
	})
	defer cleanup()
	store := catalog.NewStore(res.DB, res.Clock, res.Tel)

	source, err := New(Config{
		BaseUrl:           srv.URL,
		RequestsPerSecond: 100,
		Workers:           2,
	}, res.Tel)
	require.NoError(t, err)

	runner := ingest.NewRunner(ingest.RunnerOptions{
		Uni:    "UWaterloo",
		Source: source,
		Store:  store,
		Clock:  res.Clock,
		Tel:    res.Tel,
	})
	stats, err := runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"1179"}, stats.Terms)
	require.EqualValues(t, 2, srv.lookups.Load())

	subject, err := store.GetSubject(ctx, "UWaterloo", "CS")
	require.NoError(t, err)
	require.Equal(t, "Faculty of Mathematics", subject.Faculty)

	desc, err := store.GetCourseDescription(ctx, "UWaterloo", "CS", "135")
	require.NoError(t, err)
	require.Equal(t, "0.5", desc.Units)
	require.Equal(t, "CS 115, 121", desc.Antireq)

	sections, err := store.ListSections(ctx, "UWaterloo", "1179")
	require.NoError(t, err)
	expected := []catalog.ClassSection{
		{
			ID:        "4567",
			Term:      "1179",
			Subject:   "CS",
			Coursenum: "135",
			Section:   "001",
			Type:      "LEC",
			Status:    catalog.StatusWaitList,
			Teachers:  []string{"Byron Weber Becker", "TBA"},
			Rooms:     []string{"MC 4020"},
			Times:     []string{"MWF 01:30PM - 02:20PM"},
			Location:  "UW U",
			Group:     "1",
			Notes:     "Lecture 001 take tutorial 101",
			Extra:     map[string]string{"capacity": "90", "enrolled": "90"},
		},
		{
			ID:        "4568",
			Term:      "1179",
			Subject:   "CS",
			Coursenum: "135",
			Section:   "101",
			Type:      "TUT",
			Status:    catalog.StatusOpen,
			Teachers:  []string{"Byron Weber Becker"},
			Rooms:     []string{"TBA"},
			Times:     []string{"F 08:30AM - 09:20AM"},
			Location:  "UW U",
			Group:     "1",
			Extra:     map[string]string{"capacity": "30", "enrolled": "12"},
		},
	}
	diff := cmp.Diff(
		expected,
		sections,
		cmpopts.IgnoreFields(catalog.ClassSection{}, "LastModified"),
		cmpopts.SortSlices(func(a, b catalog.ClassSection) bool { return a.ID < b.ID }),
	)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestClock(t *testing.T) {
	require.Equal(t, "12:00AM", clock("00:00"))
	require.Equal(t, "09:05AM", clock("09:05"))
	require.Equal(t, "12:30PM", clock("12:30"))
	require.Equal(t, "11:59PM", clock("23:59"))
	require.Equal(t, "noon", clock("noon"))
}

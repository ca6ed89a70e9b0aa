package catalog

import (
	"context"
	"testing"

	"schedulestorm-backend/internal/components/chrono"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/lib/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSetActiveTermsReplacesSet(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	lifecycle := NewLifecycle(store)

	err := lifecycle.SetActiveTerms(ctx, "UCalgary", []Term{
		{ID: "A", Name: "Fall 2016"},
		{ID: "B", Name: "Winter 2017"},
	})
	require.NoError(t, err)

	err = lifecycle.SetActiveTerms(ctx, "UCalgary", []Term{
		{ID: "B", Name: "Winter 2017"},
		{ID: "C", Name: "Spring 2017"},
	})
	require.NoError(t, err)

	active, err := lifecycle.ListActiveTerms(ctx, "UCalgary")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"B": "Winter 2017", "C": "Spring 2017"}, active)

	// A is kept for history, only disabled
	termA, err := store.GetTerm(ctx, "UCalgary", "A")
	require.NoError(t, err)
	require.False(t, termA.Enabled)

	all, err := store.ListTerms(ctx, "UCalgary")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestSetActiveTermsScopedByUniversity(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	lifecycle := NewLifecycle(store)

	require.NoError(t, lifecycle.SetActiveTerms(ctx, "UCalgary", []Term{{ID: "2171", Name: "Winter 2017"}}))
	require.NoError(t, lifecycle.SetActiveTerms(ctx, "ULeth", []Term{{ID: "201701", Name: "Spring 2017"}}))

	active, err := lifecycle.ListActiveTerms(ctx, "UCalgary")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"2171": "Winter 2017"}, active)
}

func TestSetActiveTermsSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	store, _ := setupStore(t)
	lifecycle := NewLifecycle(store)

	err := lifecycle.SetActiveTerms(ctx, "ULeth", []Term{{Name: "no id"}, {ID: "201701", Name: "Spring 2017"}})
	require.NoError(t, err)

	active, err := lifecycle.ListActiveTerms(ctx, "ULeth")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"201701": "Spring 2017"}, active)
}

func TestSetActiveTermsDisablesBeforeUpserting(t *testing.T) {
	database, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	mock.ExpectExec(`UPDATE terms SET enabled = FALSE WHERE uni = \?`).
		WithArgs("UCalgary").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO terms`).
		WithArgs("UCalgary", "B", "Winter 2017", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO terms`).
		WithArgs("UCalgary", "C", "Spring 2017", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewStore(database, &chrono.FixedTime{Time: testutil.Epoch}, telemetry.SlogAPI{})
	err = NewLifecycle(store).SetActiveTerms(context.Background(), "UCalgary", []Term{
		{ID: "B", Name: "Winter 2017"},
		{ID: "C", Name: "Spring 2017"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

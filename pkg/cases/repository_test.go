package cases

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perfdash/perfdash/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	if db == nil {
		t.Skip("database tests are skipped in short mode")
	}
	ctx := context.Background()
	require.NoError(t, test_utils.TruncateAll(ctx, db))
	return ctx, NewRepository(db)
}

func TestRepositoryImpl_CreateAndGetCase(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	// when
	created, err := repo.CreateCase(ctx, Case{Id: "CASE-1", Description: "Annual review", Date: date, Manager: "Ann", Notes: "n"})
	require.NoError(t, err)

	// then
	stored, err := repo.GetCase(ctx, "CASE-1")
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Annual review", stored.Description)
	assert.Equal(t, "Ann", stored.Manager)
	assert.Equal(t, date, stored.Date.UTC())
}

func TestRepositoryImpl_CreateCase_Duplicate(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := repo.CreateCase(ctx, Case{Id: "CASE-1", Description: "d", Date: time.Now(), Manager: "m"})
	require.NoError(t, err)

	// when
	_, err = repo.CreateCase(ctx, Case{Id: "CASE-1", Description: "d", Date: time.Now(), Manager: "m"})

	// then
	assert.ErrorIs(t, err, ErrCaseAlreadyExists)
}

func TestRepositoryImpl_GetCase_NotFound(t *testing.T) {
	ctx, repo := setupTestRepository(t)

	_, err := repo.GetCase(ctx, "missing")

	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestRepositoryImpl_ListCases(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	older := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []Case{
		{Id: "B", Description: "d", Date: older, Manager: "m"},
		{Id: "A", Description: "d", Date: older, Manager: "m"},
		{Id: "C", Description: "d", Date: newer, Manager: "m"},
	} {
		_, err := repo.CreateCase(ctx, c)
		require.NoError(t, err)
	}

	// when
	cases, err := repo.ListCases(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "C", cases[0].Id)
	assert.Equal(t, "A", cases[1].Id)
	assert.Equal(t, "B", cases[2].Id)
}

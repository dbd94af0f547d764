package department_data

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/perfdash/perfdash/internal/test_utils"
	"github.com/perfdash/perfdash/pkg/cases"
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

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	if db == nil {
		t.Skip("database tests are skipped in short mode")
	}
	ctx := context.Background()
	require.NoError(t, test_utils.TruncateAll(ctx, db))
	_, err := cases.NewRepository(db).CreateCase(ctx, cases.Case{
		Id: "CASE-1", Description: "d", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Manager: "m",
	})
	require.NoError(t, err)
	return ctx, NewRepository(db)
}

func replaceYear(ctx context.Context, repo Repository, year int, records []Record) (int, error) {
	removed := 0
	err := repo.WithTransaction(ctx, func(tx Repository) error {
		keep := make([]string, 0, len(records))
		for _, rec := range records {
			keep = append(keep, rec.Department)
		}
		var err error
		removed, err = tx.DeleteStale(ctx, "CASE-1", year, keep)
		if err != nil {
			return err
		}
		return tx.Upsert(ctx, "CASE-1", year, records)
	})
	return removed, err
}

func TestRepositoryImpl_ReplaceYear_SecondUploadWins(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := replaceYear(ctx, repo, 2024, []Record{
		{Department: "Cardiology", FullyMet: 7, FullyMetPct: 70},
		{Department: "Radiology", FullyMetPct: 60},
	})
	require.NoError(t, err)

	// when
	removed, err := replaceYear(ctx, repo, 2024, []Record{
		{Department: "Neurology", FullyMetPct: 80},
		{Department: "Cardiology", FullyMet: 9, FullyMetPct: 90, NotApplicable: 2},
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	records, err := repo.GetYear(ctx, "CASE-1", 2024)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Neurology", records[0].Department)
	assert.Equal(t, Record{Department: "Cardiology", FullyMet: 9, FullyMetPct: 90, NotApplicable: 2}, records[1])
}

func TestRepositoryImpl_WithTransaction_RollsBack(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := replaceYear(ctx, repo, 2023, []Record{{Department: "A", FullyMetPct: 10}})
	require.NoError(t, err)

	// when
	err = repo.WithTransaction(ctx, func(tx Repository) error {
		if _, err := tx.DeleteStale(ctx, "CASE-1", 2023, nil); err != nil {
			return err
		}
		return assert.AnError
	})

	// then
	assert.ErrorIs(t, err, assert.AnError)
	records, err := repo.GetYear(ctx, "CASE-1", 2023)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRepositoryImpl_ListYears(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	for _, year := range []int{2024, 2022, 2023} {
		_, err := replaceYear(ctx, repo, year, []Record{{Department: "A"}})
		require.NoError(t, err)
	}

	// when
	years, err := repo.ListYears(ctx, "CASE-1")

	// then
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023, 2024}, years)
}

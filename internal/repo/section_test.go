package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

func sectionFixture(ordinal int) domain.Section {
	start := time.Date(2025, 6, ordinal, 0, 0, 0, 0, time.UTC)
	return domain.Section{
		Ordinal:    ordinal,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 1),
		Place:      "Alfama",
		Activities: []string{"walk", "fado"},
		Budget:     50.25,
	}
}

func TestSectionRepo_Replace(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	u := createUser(t, tx, domain.RoleUser)
	trip := createTrip(t, tx, tripFixture(u))
	r := repo.NewSectionRepo(tx)

	_, err := r.Replace(ctx, trip.ID, []domain.Section{sectionFixture(1), sectionFixture(2), sectionFixture(3)})
	require.NoError(t, err)

	got, err := r.Replace(ctx, trip.ID, []domain.Section{sectionFixture(2), sectionFixture(1)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, trip.ID, got[0].TripID)
	assert.Equal(t, []string{"walk", "fado"}, got[0].Activities)
	assert.InDelta(t, 50.25, got[0].Budget, 1e-9)

	listed, err := r.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2, "previous sections are fully replaced")
	assert.Equal(t, 1, listed[0].Ordinal)
	assert.Equal(t, 2, listed[1].Ordinal)
}

func TestSectionRepo_Replace_UnknownTrip(t *testing.T) {
	tx := newTx(t)

	_, err := repo.NewSectionRepo(tx).Replace(context.Background(), uuid.New(), []domain.Section{sectionFixture(1)})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSectionRepo_DeleteByTrip(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	u := createUser(t, tx, domain.RoleUser)
	trip := createTrip(t, tx, tripFixture(u))
	r := repo.NewSectionRepo(tx)
	_, err := r.Replace(ctx, trip.ID, []domain.Section{sectionFixture(1), sectionFixture(2)})
	require.NoError(t, err)

	n, err := r.DeleteByTrip(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	listed, err := r.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

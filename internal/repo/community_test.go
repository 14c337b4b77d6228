package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

func TestCommunityRepo_CreateAndList(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	u := createUser(t, tx, domain.RoleUser)
	trip := createTrip(t, tx, tripFixture(u))
	sections := []domain.Section{sectionFixture(1), sectionFixture(2)}
	r := repo.NewCommunityRepo(tx)

	first, err := r.Create(ctx, domain.NewCommunityMessage(u.ID, trip, sections[:1]))
	require.NoError(t, err)
	second, err := r.Create(ctx, domain.NewCommunityMessage(u.ID, trip, sections))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, second.ID)

	msgs, err := r.List(ctx)
	require.NoError(t, err)

	var got []domain.CommunityMessage
	for _, m := range msgs {
		if m.ID == first.ID || m.ID == second.ID {
			got = append(got, m)
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest first")
	assert.Equal(t, "Lisbon", got[0].Trip.PlaceName)
	assert.Len(t, got[0].Sections, 2)
	assert.InDelta(t, 100.5, got[0].TotalBudget, 1e-9)
	require.NotNil(t, got[0].Author)
	assert.Equal(t, u.Username, got[0].Author.Username)
}

func TestCommunityRepo_Create_UnknownUser(t *testing.T) {
	tx := newTx(t)
	trip := tripFixture(domain.User{ID: uuid.New()})

	_, err := repo.NewCommunityRepo(tx).Create(context.Background(), domain.NewCommunityMessage(trip.CreatedBy, trip, nil))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

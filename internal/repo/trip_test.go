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

func TestTripRepo_Create(t *testing.T) {
	tx := newTx(t)
	u := createUser(t, tx, domain.RoleUser)
	input := tripFixture(u)

	got, err := repo.NewTripRepo(tx).Create(context.Background(), input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.PlaceName, got.PlaceName)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, u.ID, got.CreatedBy)
	assert.Empty(t, got.Status, "status is never stored")
}

func TestTripRepo_Create_UnknownCreator(t *testing.T) {
	tx := newTx(t)
	trip := tripFixture(domain.User{ID: uuid.New()})

	_, err := repo.NewTripRepo(tx).Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	tx := newTx(t)

	_, err := repo.NewTripRepo(tx).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUser_ScopedToOwner(t *testing.T) {
	tx := newTx(t)
	owner := createUser(t, tx, domain.RoleUser)
	other := createUser(t, tx, domain.RoleUser)
	createTrip(t, tx, tripFixture(owner))
	createTrip(t, tx, tripFixture(other))

	trips, err := repo.NewTripRepo(tx).ListByUser(context.Background(), owner.ID)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, owner.ID, trips[0].CreatedBy)
}

func TestTripRepo_ListByUserFiltered(t *testing.T) {
	tx := newTx(t)
	u := createUser(t, tx, domain.RoleUser)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	ongoing := tripFixture(u) // June 1-15
	ongoing.PlaceName = "New York City"
	ongoing.NumberOfPeople = 4
	createTrip(t, tx, ongoing)

	upcoming := tripFixture(u)
	upcoming.PlaceName = "Newcastle"
	upcoming.StartDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	upcoming.EndDate = time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)
	createTrip(t, tx, upcoming)

	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	got, err := r.ListByUserFiltered(ctx, u.ID, domain.TripFilter{Status: domain.StatusOngoing}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New York City", got[0].PlaceName)

	minPeople := 3
	got, err = r.ListByUserFiltered(ctx, u.ID, domain.TripFilter{PlaceName: "new", MinPeople: &minPeople}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New York City", got[0].PlaceName)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	got, err = r.ListByUserFiltered(ctx, u.ID, domain.TripFilter{Status: domain.StatusUpcoming, StartFrom: &from}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Newcastle", got[0].PlaceName)
}

func TestTripRepo_Search(t *testing.T) {
	tx := newTx(t)
	a := createUser(t, tx, domain.RoleUser)
	b := createUser(t, tx, domain.RoleUser)
	trip := tripFixture(a)
	trip.PlaceName = "Paris"
	createTrip(t, tx, trip)
	trip = tripFixture(b)
	trip.PlaceName = "Parisville"
	createTrip(t, tx, trip)

	r := repo.NewTripRepo(tx)

	all, err := r.Search(context.Background(), "PAR", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 2)

	scoped, err := r.Search(context.Background(), "par", &b.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Parisville", scoped[0].PlaceName)

	none, err := r.Search(context.Background(), "100%", &b.ID)
	require.NoError(t, err)
	assert.Empty(t, none, "wildcards in the query are literal")
}

func TestTripRepo_ListOverlapping(t *testing.T) {
	tx := newTx(t)
	u := createUser(t, tx, domain.RoleUser)
	spanning := tripFixture(u)
	spanning.StartDate = time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)
	spanning.EndDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	createTrip(t, tx, spanning)
	nextMonth := tripFixture(u)
	nextMonth.StartDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	nextMonth.EndDate = time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	createTrip(t, tx, nextMonth)

	from, to := domain.MonthRange(2025, 6)
	got, err := repo.NewTripRepo(tx).ListOverlapping(context.Background(), u.ID, from, to)

	require.NoError(t, err)
	require.Len(t, got, 1, "a trip starting on the first of next month is excluded")
	assert.True(t, got[0].StartDate.Equal(spanning.StartDate))
}

// ListStartingBetween backs the 30-day upcoming view: both window ends are
// inclusive and results come back soonest first.
func TestTripRepo_ListStartingBetween(t *testing.T) {
	tx := newTx(t)
	u := createUser(t, tx, domain.RoleUser)
	from := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	for _, tc := range []struct {
		place string
		start time.Time
	}{
		{"at-to", to},
		{"after-window", to.Add(time.Second)},
		{"middle", from.AddDate(0, 0, 12)},
		{"before-window", from.Add(-time.Second)},
		{"at-from", from},
	} {
		trip := tripFixture(u)
		trip.PlaceName = tc.place
		trip.StartDate = tc.start
		trip.EndDate = tc.start.AddDate(0, 0, 2)
		createTrip(t, tx, trip)
	}

	got, err := repo.NewTripRepo(tx).ListStartingBetween(context.Background(), u.ID, from, to)

	require.NoError(t, err)
	places := make([]string, len(got))
	for i, trip := range got {
		places[i] = trip.PlaceName
	}
	assert.Equal(t, []string{"at-from", "middle", "at-to"}, places)
}

func TestTripRepo_ListPaged(t *testing.T) {
	tx := newTx(t)
	u := createUser(t, tx, domain.RoleUser)
	for i := 0; i < 3; i++ {
		createTrip(t, tx, tripFixture(u))
	}
	limit := 2
	p := domain.NewPaginationParams(nil, &limit)

	trips, total, err := repo.NewTripRepo(tx).ListPaged(context.Background(), "", time.Now(), p)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
	assert.Len(t, trips, 2)
	assert.NotEmpty(t, trips[0].Creator.Email)
}

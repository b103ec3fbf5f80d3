package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_UninitializedStoreReturnsEmptyData(t *testing.T) {
	repo := NewPostgresRecommendationRepository(nil, testLogger())
	ctx := context.Background()

	user, err := repo.GetUserByID(ctx, uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, user)

	users, err := repo.GetAllUsers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, users)

	trips, err := repo.GetAllTrips(ctx)
	assert.NoError(t, err)
	assert.Empty(t, trips)
}

func TestRepository_GetUserByID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())
	uid := uuid.New()
	now := time.Now()
	age := 30
	city := "Mumbai"

	mockPool.ExpectQuery("SELECT id, age, city, places_visited, recently_visited, created_at, updated_at").
		WithArgs(uid).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "age", "city", "places_visited", "recently_visited", "created_at", "updated_at",
		}).AddRow(uid, &age, &city, []string{"Goa"}, []string{"Kerala"}, now, now))

	user, err := repo.GetUserByID(context.Background(), uid.String())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uid.String(), user.ID)
	require.NotNil(t, user.Age)
	assert.Equal(t, 30, *user.Age)
	assert.Equal(t, []string{"Goa"}, user.PlacesVisited)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_GetUserByID_NoRows(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())
	uid := uuid.New()

	mockPool.ExpectQuery("SELECT id, age, city").
		WithArgs(uid).
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.GetUserByID(context.Background(), uid.String())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_GetUserByID_MalformedID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())

	user, err := repo.GetUserByID(context.Background(), "not-a-uuid")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mockPool.ExpectationsWereMet(), "no query issued for malformed ids")
}

func TestRepository_GetAllUsers(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())
	uid1 := uuid.New()
	uid2 := uuid.New()
	age := 25

	mockPool.ExpectQuery("SELECT id, age, city, places_visited, recently_visited").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "age", "city", "places_visited", "recently_visited",
		}).
			AddRow(uid1, &age, nil, []string{"Goa"}, []string{}).
			AddRow(uid2, nil, nil, []string{}, []string{"Paris"}))

	users, err := repo.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uid1.String(), users[0].ID)
	assert.Nil(t, users[1].Age)
	assert.Equal(t, []string{"Paris"}, users[1].RecentlyVisited)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepository_GetAllUsers_QueryError(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())
	mockPool.ExpectQuery("SELECT id, age, city").
		WillReturnError(errors.New("connection refused"))

	users, err := repo.GetAllUsers(context.Background())
	assert.Error(t, err)
	assert.Empty(t, users)
}

func TestRepository_GetAllTrips_MergesTimestampColumns(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresRecommendationRepository(mockPool, testLogger())
	uid := uuid.New()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("SELECT user_id, payload, created_at, updated_at").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "payload", "created_at", "updated_at"}).
			AddRow(uid, map[string]any{"destination": "Kerala"}, created, updated).
			AddRow(uid, map[string]any{"place": "Goa", "updatedAt": "2025-03-01"}, created, updated))

	trips, err := repo.GetAllTrips(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 2)

	assert.Equal(t, uid.String(), trips[0].UserID)
	assert.Equal(t, "Kerala", trips[0].Fields["destination"])
	assert.Equal(t, created, trips[0].Fields["createdAt"], "column timestamps fill missing payload fields")
	assert.Equal(t, updated, trips[0].Fields["updatedAt"])

	assert.Equal(t, "2025-03-01", trips[1].Fields["updatedAt"], "payload timestamps win over columns")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

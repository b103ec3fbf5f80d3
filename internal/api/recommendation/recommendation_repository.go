package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/go-city-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-city-recommendations/internal/types"
)

var _ RecommendationRepository = (*PostgresRecommendationRepository)(nil)

// RecommendationRepository is the read-only view of the user/trip store the
// engine needs. Absence or unavailability of the store degrades to empty
// results, never to an error surfaced past the service layer.
type RecommendationRepository interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetAllUsers(ctx context.Context) ([]types.User, error)
	GetAllTrips(ctx context.Context) ([]types.Trip, error)
}

// PGXQuerier is the slice of pgxpool.Pool the repository uses. pgxmock's
// pool satisfies it too, which is what the repository tests run against.
type PGXQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRecommendationRepository struct {
	logger *slog.Logger
	db     PGXQuerier
}

// NewPostgresRecommendationRepository creates the Postgres-backed store
// view. A nil db means the store never came up; every query then returns
// empty data so the ranking logic can fall through to fallback.
func NewPostgresRecommendationRepository(db PGXQuerier, logger *slog.Logger) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresRecommendationRepository) initialized() bool {
	return r.db != nil
}

func (r *PostgresRecommendationRepository) observe(ctx context.Context, query string, start time.Time, err error) {
	m := metrics.Get()
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.WarnContext(ctx, "Database query failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
	}
}

// GetUserByID fetches one user by its normalized string identifier.
// Unknown or malformed ids yield (nil, nil).
func (r *PostgresRecommendationRepository) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	if !r.initialized() {
		r.logger.WarnContext(ctx, "Store not initialized, returning no user")
		return nil, nil
	}

	uid, err := uuid.Parse(NormalizeID(id))
	if err != nil {
		return nil, nil
	}

	query := `
        SELECT id, age, city, places_visited, recently_visited, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	start := time.Now()
	var (
		rowID     uuid.UUID
		user      types.User
		createdAt time.Time
		updatedAt time.Time
	)
	err = r.db.QueryRow(ctx, query, uid).Scan(
		&rowID, &user.Age, &user.City, &user.PlacesVisited, &user.RecentlyVisited, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.observe(ctx, "GetUserByID", start, nil)
			return nil, nil
		}
		r.observe(ctx, "GetUserByID", start, err)
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	r.observe(ctx, "GetUserByID", start, nil)

	user.ID = NormalizeID(rowID.String())
	user.CreatedAt = &createdAt
	user.UpdatedAt = &updatedAt
	return &user, nil
}

// GetAllUsers returns the full user population snapshot with normalized ids.
func (r *PostgresRecommendationRepository) GetAllUsers(ctx context.Context) ([]types.User, error) {
	if !r.initialized() {
		r.logger.WarnContext(ctx, "Store not initialized, returning empty user snapshot")
		return nil, nil
	}

	query := `
        SELECT id, age, city, places_visited, recently_visited
        FROM users
        ORDER BY created_at
    `
	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.observe(ctx, "GetAllUsers", start, err)
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var (
			rowID uuid.UUID
			user  types.User
		)
		if err := rows.Scan(&rowID, &user.Age, &user.City, &user.PlacesVisited, &user.RecentlyVisited); err != nil {
			r.observe(ctx, "GetAllUsers", start, err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.ID = NormalizeID(rowID.String())
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		r.observe(ctx, "GetAllUsers", start, err)
		return nil, fmt.Errorf("failed reading user rows: %w", err)
	}
	r.observe(ctx, "GetAllUsers", start, nil)
	return users, nil
}

// GetAllTrips returns the full trips snapshot. The jsonb payload keeps
// whatever field names the importer wrote; the canonical timestamp columns
// are merged into the field map unless the payload already carries them.
func (r *PostgresRecommendationRepository) GetAllTrips(ctx context.Context) ([]types.Trip, error) {
	if !r.initialized() {
		r.logger.WarnContext(ctx, "Store not initialized, returning empty trip snapshot")
		return nil, nil
	}

	query := `
        SELECT user_id, payload, created_at, updated_at
        FROM trips
        ORDER BY created_at
    `
	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.observe(ctx, "GetAllTrips", start, err)
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}
	defer rows.Close()

	var trips []types.Trip
	for rows.Next() {
		var (
			userID    uuid.UUID
			payload   map[string]any
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&userID, &payload, &createdAt, &updatedAt); err != nil {
			r.observe(ctx, "GetAllTrips", start, err)
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		if payload == nil {
			payload = make(map[string]any)
		}
		if _, ok := payload["createdAt"]; !ok {
			payload["createdAt"] = createdAt
		}
		if _, ok := payload["updatedAt"]; !ok {
			payload["updatedAt"] = updatedAt
		}
		trips = append(trips, types.Trip{
			UserID: NormalizeID(userID.String()),
			Fields: payload,
		})
	}
	if err := rows.Err(); err != nil {
		r.observe(ctx, "GetAllTrips", start, err)
		return nil, fmt.Errorf("failed reading trip rows: %w", err)
	}
	r.observe(ctx, "GetAllTrips", start, nil)
	return trips, nil
}

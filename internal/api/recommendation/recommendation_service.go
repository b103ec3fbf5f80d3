package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-city-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-city-recommendations/config"
	"github.com/FACorreiaa/go-city-recommendations/internal/types"
)

// Ensure implementation satisfies the interface
var _ RecommendationService = (*RecommendationServiceImpl)(nil)

// RecommendationService defines the business logic contract for
// destination recommendations.
type RecommendationService interface {
	RecommendCities(ctx context.Context, rawUserID string) (*types.RecommendationsResponse, error)
	DebugData(ctx context.Context) (*types.DebugData, error)
}

// RecommendationServiceImpl sequences the three strategies (age,
// co-visitation, same city) over a request-local data snapshot and tops up
// with fallback places so a response always has three bounded,
// non-overlapping sections.
type RecommendationServiceImpl struct {
	logger    *slog.Logger
	repo      RecommendationRepository
	fallback  *fallbackPicker
	topN      int
	ageWindow int
}

// NewRecommendationService creates a new recommendation service instance.
// A nil rng means a time-seeded fallback order; tests inject their own.
func NewRecommendationService(repo RecommendationRepository, cfg *config.Config, logger *slog.Logger, rng *rand.Rand) *RecommendationServiceImpl {
	topN := defaultTopN
	ageWindow := defaultAgeWindow
	if cfg != nil {
		if cfg.Recommendations.TopN > 0 {
			topN = cfg.Recommendations.TopN
		}
		if cfg.Recommendations.AgeWindow > 0 {
			ageWindow = cfg.Recommendations.AgeWindow
		}
	}
	return &RecommendationServiceImpl{
		logger:    logger,
		repo:      repo,
		fallback:  newFallbackPicker(rng),
		topN:      topN,
		ageWindow: ageWindow,
	}
}

// RecommendCities produces the three-section recommendation payload for a
// user. ErrInvalidUserID and ErrNotFound are the only failure modes; past
// identifier validation the method always returns a payload, falling back
// to the static list when no data-driven signal exists.
func (s *RecommendationServiceImpl) RecommendCities(ctx context.Context, rawUserID string) (*types.RecommendationsResponse, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "RecommendCities", trace.WithAttributes(
		attribute.String("user.id", rawUserID),
	))
	defer span.End()

	start := time.Now()
	m := metrics.Get()
	defer func() {
		m.RecommendationRequestsTotal.Add(ctx, 1)
		m.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	userID := NormalizeID(rawUserID)
	if userID == "" {
		span.SetStatus(codes.Error, "Missing user id")
		return nil, ErrInvalidUserID
	}
	if _, err := uuid.Parse(userID); err != nil {
		span.SetStatus(codes.Error, "Malformed user id")
		return nil, fmt.Errorf("%w: %s", ErrInvalidUserID, rawUserID)
	}

	l := s.logger.With(slog.String("method", "RecommendCities"), slog.String("userID", userID))

	target, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		// Store trouble is not a request failure; an unknown user is.
		l.WarnContext(ctx, "User lookup failed, treating as not found", slog.Any("error", err))
		target = nil
	}
	if target == nil {
		span.SetStatus(codes.Error, "User not found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	target.ID = userID

	snap := s.fetchSnapshot(ctx, l)
	targetPlaces := userPlaces(target)
	targetPlaceSet := placeSet(targetPlaces)

	l.DebugContext(ctx, "Recommendation inputs",
		slog.Int("users", len(snap.users)),
		slog.Int("trips", len(snap.trips)),
		slog.Int("visited_places", len(targetPlaces)),
		slog.String("recent_place", mostRecentPlace(target)),
	)

	ageGroup := similarAgeGroup(target, snap.users, s.ageWindow)
	sec1 := rankGroup(s.logger, snap, target, ageGroup, s.topN, targetPlaces)

	covisGroup := coVisitationGroup(target, targetPlaceSet, snap.users)
	sec2 := rankGroup(s.logger, snap, target, covisGroup, s.topN, concat(targetPlaces, sec1))

	cityGroup := sameCityGroup(target, snap.users)
	sec3 := rankGroup(s.logger, snap, target, cityGroup, s.topN, concat(targetPlaces, sec1, sec2))

	l.InfoContext(ctx, "Data-driven recommendations computed",
		slog.Int("age_group", len(ageGroup)),
		slog.Int("covisit_group", len(covisGroup)),
		slog.Int("city_group", len(cityGroup)),
		slog.Int("sec1", len(sec1)),
		slog.Int("sec2", len(sec2)),
		slog.Int("sec3", len(sec3)),
	)

	totalDataRecs := len(sec1) + len(sec2) + len(sec3)
	fallbackServed := 0

	if totalDataRecs == 0 {
		// No signal at all: replace everything with one fallback draw
		// sliced into three consecutive sections.
		l.InfoContext(ctx, "No data-driven recommendations found, using fallbacks")
		draw := s.fallback.Pick(targetPlaces, fallbackReplaceCount)
		sec1 = slice(draw, 0, s.topN)
		sec2 = slice(draw, s.topN, 2*s.topN)
		sec3 = slice(draw, 2*s.topN, 3*s.topN)
		fallbackServed = len(draw)
	} else if totalDataRecs < s.topN {
		// Partial signal: seed each still-empty section with a couple of
		// fallback places, each top-up's exclusions feeding the next so a
		// place never lands in two sections.
		base := concat(sec1, sec2, sec3, targetPlaces)
		if len(sec1) == 0 {
			sec1 = s.fallback.Pick(base, fallbackTopUpCount)
			fallbackServed += len(sec1)
		}
		if len(sec2) == 0 {
			sec2 = s.fallback.Pick(concat(base, sec1), fallbackTopUpCount)
			fallbackServed += len(sec2)
		}
		if len(sec3) == 0 {
			sec3 = s.fallback.Pick(concat(base, sec1, sec2), fallbackTopUpCount)
			fallbackServed += len(sec3)
		}
	}
	if fallbackServed > 0 {
		m.FallbackPlacesServedTotal.Add(ctx, int64(fallbackServed))
	}

	l.InfoContext(ctx, "Recommendations assembled",
		slog.Int("sec1", len(sec1)),
		slog.Int("sec2", len(sec2)),
		slog.Int("sec3", len(sec3)),
		slog.Int("fallback_served", fallbackServed),
	)
	span.SetStatus(codes.Ok, "Recommendations assembled")

	return &types.RecommendationsResponse{
		User: types.RecommendationsUser{
			Recommendations: types.Recommendations{
				BasedOnSimilarAgeGroup: nonNil(sec1),
				BasedOnCoVisitation:    nonNil(sec2),
				BasedOnSameCity:        nonNil(sec3),
			},
		},
	}, nil
}

// DebugData reports store counts, the resolved trip field names and a
// sample user with places, for data inspection during rollout.
func (s *RecommendationServiceImpl) DebugData(ctx context.Context) (*types.DebugData, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "DebugData")
	defer span.End()

	l := s.logger.With(slog.String("method", "DebugData"))
	snap := s.fetchSnapshot(ctx, l)

	data := &types.DebugData{
		UsersCount:     len(snap.users),
		TripsCount:     len(snap.trips),
		TripPlaceField: resolveTripField(snap.trips, destinationFieldCandidates),
		TripDateField:  resolveTripField(snap.trips, tripDateFieldCandidates),
	}
	for i := range snap.users {
		if places := userPlaces(&snap.users[i]); len(places) > 0 {
			data.SampleUser = &snap.users[i]
			data.SampleUserPlaces = places
			break
		}
	}

	span.SetStatus(codes.Ok, "Debug data assembled")
	return data, nil
}

// fetchSnapshot pulls the users and trips bulk snapshots concurrently.
// Store failures degrade to empty collections so the strategies can fall
// through to fallback.
func (s *RecommendationServiceImpl) fetchSnapshot(ctx context.Context, l *slog.Logger) *dataSnapshot {
	var (
		users []types.User
		trips []types.Trip
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.repo.GetAllUsers(gctx)
		if err != nil {
			l.WarnContext(gctx, "User snapshot unavailable, treating as empty", slog.Any("error", err))
			return nil
		}
		users = u
		return nil
	})
	g.Go(func() error {
		t, err := s.repo.GetAllTrips(gctx)
		if err != nil {
			l.WarnContext(gctx, "Trip snapshot unavailable, treating as empty", slog.Any("error", err))
			return nil
		}
		trips = t
		return nil
	})
	_ = g.Wait()
	return newDataSnapshot(users, trips)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, list := range lists {
		out = append(out, list...)
	}
	return out
}

// slice clamps [from:to] to the available length, shorter or empty rather
// than out of range.
func slice(s []string, from, to int) []string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-city-recommendations/internal/api/recommendation"
	"github.com/FACorreiaa/go-city-recommendations/internal/router"
	"github.com/FACorreiaa/go-city-recommendations/internal/types"
)

// e2eStore is an in-memory stand-in for the Postgres store so the full
// HTTP stack (router, handler, service, engine) runs without a database.
type e2eStore struct {
	users []types.User
	trips []types.Trip
}

func (s *e2eStore) GetUserByID(_ context.Context, id string) (*types.User, error) {
	norm := recommendation.NormalizeID(id)
	for i := range s.users {
		if s.users[i].ID == norm {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *e2eStore) GetAllUsers(_ context.Context) ([]types.User, error) {
	return s.users, nil
}

func (s *e2eStore) GetAllTrips(_ context.Context) ([]types.Trip, error) {
	return s.trips, nil
}

// E2ETestSuite runs complete request workflows against the real router.
type E2ETestSuite struct {
	suite.Suite
	server  *httptest.Server
	client  *http.Client
	baseURL string
	logger  *slog.Logger

	targetID string
	peerID   string
}

// SetupSuite initializes the test suite
func (s *E2ETestSuite) SetupSuite() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s.targetID = uuid.New().String()
	s.peerID = uuid.New().String()

	age := 30
	peerAge := 32
	city := "Mumbai"
	store := &e2eStore{
		users: []types.User{
			{ID: s.targetID, Age: &age, City: &city, PlacesVisited: []string{"Goa"}},
			{ID: s.peerID, Age: &peerAge, City: &city, PlacesVisited: []string{"Kerala", "Goa"}},
		},
		trips: []types.Trip{
			{UserID: s.peerID, Fields: map[string]any{"destination": "Kerala", "updatedAt": "2025-06-01"}},
		},
	}

	service := recommendation.NewRecommendationService(store, nil, s.logger, rand.New(rand.NewSource(7)))
	handler := recommendation.NewHandlerImpl(service, s.logger)

	mux := router.SetupRouter(&router.Config{RecommendationHandler: handler})
	s.server = httptest.NewServer(mux)
	s.baseURL = s.server.URL
	s.client = &http.Client{Timeout: 30 * time.Second}
}

// TearDownSuite cleans up after all tests
func (s *E2ETestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *E2ETestSuite) get(path string) (*http.Response, []byte) {
	resp, err := s.client.Get(s.baseURL + path)
	s.Require().NoError(err)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	resp.Body.Close()
	return resp, body
}

func (s *E2ETestSuite) TestHealthCheck() {
	resp, body := s.get("/ping")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("pong", string(body))
}

func (s *E2ETestSuite) TestRecommendationsWorkflow() {
	resp, body := s.get("/api/v1/recommendations/cities?id=" + s.targetID)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var out types.RecommendationsResponse
	s.Require().NoError(json.Unmarshal(body, &out))

	recs := out.User.Recommendations
	s.Require().NotEmpty(recs.BasedOnSimilarAgeGroup)
	s.Equal("kerala", recs.BasedOnSimilarAgeGroup[0], "peer trip signal ranks first")

	seen := map[string]bool{"goa": true}
	for _, section := range [][]string{
		recs.BasedOnSimilarAgeGroup,
		recs.BasedOnCoVisitation,
		recs.BasedOnSameCity,
	} {
		s.LessOrEqual(len(section), 7)
		for _, place := range section {
			s.False(seen[place], fmt.Sprintf("place %q repeated or already visited", place))
			seen[place] = true
		}
	}
}

func (s *E2ETestSuite) TestMissingUserIDRejected() {
	resp, _ := s.get("/api/v1/recommendations/cities")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) TestMalformedUserIDRejected() {
	resp, _ := s.get("/api/v1/recommendations/cities?id=definitely-not-a-uuid")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) TestUnknownUserRejected() {
	resp, _ := s.get("/api/v1/recommendations/cities?id=" + uuid.New().String())
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) TestDebugEndpoint() {
	resp, body := s.get("/api/v1/recommendations/debug")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var data types.DebugData
	s.Require().NoError(json.Unmarshal(body, &data))
	s.Equal(2, data.UsersCount)
	s.Equal(1, data.TripsCount)
	s.Equal("destination", data.TripPlaceField)
}

func TestE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(E2ETestSuite))
}

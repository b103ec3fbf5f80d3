package recommendation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-city-recommendations/internal/types"
)

// MockRecommendationService is a mock implementation of the
// RecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) RecommendCities(ctx context.Context, rawUserID string) (*types.RecommendationsResponse, error) {
	args := m.Called(ctx, rawUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendationsResponse), args.Error(1)
}

func (m *MockRecommendationService) DebugData(ctx context.Context) (*types.DebugData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DebugData), args.Error(1)
}

func TestRecommendCitiesHandler_MissingID(t *testing.T) {
	handler := NewHandlerImpl(new(MockRecommendationService), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/cities", nil)
	rec := httptest.NewRecorder()
	handler.RecommendCities(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing user ID parameter")
}

func TestRecommendCitiesHandler_InvalidID(t *testing.T) {
	svc := new(MockRecommendationService)
	svc.On("RecommendCities", mock.Anything, "nope").Return(nil, ErrInvalidUserID)
	handler := NewHandlerImpl(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/cities?id=nope", nil)
	rec := httptest.NewRecorder()
	handler.RecommendCities(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid user ID format")
}

func TestRecommendCitiesHandler_NotFound(t *testing.T) {
	userID := uuid.New().String()
	svc := new(MockRecommendationService)
	svc.On("RecommendCities", mock.Anything, userID).Return(nil, ErrNotFound)
	handler := NewHandlerImpl(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/cities?id="+userID, nil)
	rec := httptest.NewRecorder()
	handler.RecommendCities(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User ID not found")
}

func TestRecommendCitiesHandler_OK(t *testing.T) {
	userID := uuid.New().String()
	resp := &types.RecommendationsResponse{
		User: types.RecommendationsUser{
			Recommendations: types.Recommendations{
				BasedOnSimilarAgeGroup: []string{"kerala"},
				BasedOnCoVisitation:    []string{"paris", "tokyo"},
				BasedOnSameCity:        []string{},
			},
		},
	}
	svc := new(MockRecommendationService)
	svc.On("RecommendCities", mock.Anything, userID).Return(resp, nil)
	handler := NewHandlerImpl(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/cities?id="+userID, nil)
	rec := httptest.NewRecorder()
	handler.RecommendCities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got types.RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"kerala"}, got.User.Recommendations.BasedOnSimilarAgeGroup)
	assert.Equal(t, []string{"paris", "tokyo"}, got.User.Recommendations.BasedOnCoVisitation)
	assert.Empty(t, got.User.Recommendations.BasedOnSameCity)
	svc.AssertExpectations(t)
}

func TestDebugDataHandler_OK(t *testing.T) {
	svc := new(MockRecommendationService)
	svc.On("DebugData", mock.Anything).Return(&types.DebugData{
		UsersCount:     3,
		TripsCount:     1,
		TripPlaceField: "destination",
	}, nil)
	handler := NewHandlerImpl(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/debug", nil)
	rec := httptest.NewRecorder()
	handler.DebugData(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got types.DebugData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.UsersCount)
	assert.Equal(t, "destination", got.TripPlaceField)
}

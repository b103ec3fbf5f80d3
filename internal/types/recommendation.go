package types

// Recommendations are the three strategy sections of one response. The
// sections are ordered, bounded and never share a place within a single
// response.
type Recommendations struct {
	BasedOnSimilarAgeGroup []string `json:"based_on_similar_age_group"`
	BasedOnCoVisitation    []string `json:"based_on_co_visitation"`
	BasedOnSameCity        []string `json:"based_on_same_city"`
}

// RecommendationsUser wraps the recommendation sections under the user key
// the dashboard consumes.
type RecommendationsUser struct {
	Recommendations Recommendations `json:"recommendations"`
}

// RecommendationsResponse is the payload of the recommend-cities endpoint.
type RecommendationsResponse struct {
	User RecommendationsUser `json:"user"`
}

// Response is the generic error/status envelope.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// DebugData is the payload of the data-inspection endpoint.
type DebugData struct {
	UsersCount       int      `json:"users_count"`
	TripsCount       int      `json:"trips_count"`
	TripPlaceField   string   `json:"trip_place_field,omitempty"`
	TripDateField    string   `json:"trip_date_field,omitempty"`
	SampleUser       *User    `json:"sample_user,omitempty"`
	SampleUserPlaces []string `json:"sample_user_places,omitempty"`
}

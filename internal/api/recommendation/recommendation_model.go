package recommendation

import "errors"

var ErrNotFound = errors.New("requested user not found")
var ErrInvalidUserID = errors.New("invalid user id")

const (
	defaultTopN      = 7
	defaultAgeWindow = 5

	// Fallback sizing: a full replacement draws enough for all three
	// sections, a top-up only seeds an empty section with a taste.
	fallbackReplaceCount = 21
	fallbackTopUpCount   = 2
)

// Trip documents come from heterogeneous upstream sources, so the
// destination and date columns are resolved against these ordered
// candidate lists, first match wins.
var destinationFieldCandidates = []string{
	"destination", "place", "city", "location", "to", "place_name", "trip_destination",
}

var tripDateFieldCandidates = []string{
	"updatedAt", "createdAt", "trip_date", "date",
}

// fallbackPlaces is the curated popularity list served when no data-driven
// signal exists. Loaded once at startup, never mutated.
var fallbackPlaces = []string{
	"mumbai", "delhi", "bangalore", "chennai", "kolkata", "hyderabad", "pune",
	"jaipur", "ahmedabad", "surat", "lucknow", "kanpur", "nagpur", "indore",
	"thane", "bhopal", "visakhapatnam", "pimpri-chinchwad", "patna", "vadodara",
	"goa", "kerala", "rajasthan", "himachal pradesh", "uttarakhand",
	"paris", "london", "tokyo", "new york", "dubai", "singapore", "thailand",
	"bali", "maldives", "nepal", "bhutan", "sri lanka", "malaysia", "vietnam",
}

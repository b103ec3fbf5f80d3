package recommendation

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/FACorreiaa/go-city-recommendations/internal/types"
)

// NormalizePlace canonicalizes a free-text place mention. Two mentions are
// the same place iff their normalized forms are equal.
func NormalizePlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeID gives identifiers the same trim+lowercase treatment before
// they are used as map keys or set members.
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// recencyWeight maps a trip timestamp onto [0,1] within the group's date
// range. A zero timestamp scores 0.0, a single-date range scores 1.0,
// otherwise linear interpolation over whole elapsed days.
func recencyWeight(t, minDate, maxDate time.Time) float64 {
	if t.IsZero() {
		return 0.0
	}
	totalDays := wholeDays(maxDate.Sub(minDate))
	if totalDays == 0 {
		return 1.0
	}
	return float64(wholeDays(t.Sub(minDate))) / float64(totalDays)
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

// userPlaces returns every place a user has visited, normalized and
// deduplicated, in profile-list order (placesVisited first, then
// recentlyVisited). Falsy entries are skipped.
func userPlaces(u *types.User) []string {
	if u == nil {
		return nil
	}
	var places []string
	seen := make(map[string]struct{})
	for _, list := range [][]string{u.PlacesVisited, u.RecentlyVisited} {
		for _, p := range list {
			norm := NormalizePlace(p)
			if norm == "" {
				continue
			}
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = struct{}{}
			places = append(places, norm)
		}
	}
	return places
}

func placeSet(places []string) map[string]struct{} {
	set := make(map[string]struct{}, len(places))
	for _, p := range places {
		set[p] = struct{}{}
	}
	return set
}

// mostRecentPlace is the freshest place signal a profile carries: the head
// of recentlyVisited, else the tail of placesVisited. The recent signal is
// profile-list order, not trip timestamps.
func mostRecentPlace(u *types.User) string {
	if u == nil {
		return ""
	}
	if len(u.RecentlyVisited) > 0 {
		return NormalizePlace(u.RecentlyVisited[0])
	}
	if len(u.PlacesVisited) > 0 {
		return NormalizePlace(u.PlacesVisited[len(u.PlacesVisited)-1])
	}
	return ""
}

// similarAgeGroup collects users whose age is within the window (inclusive)
// of the target's age, excluding the target itself. Empty when the target
// has no age. Population order is preserved.
func similarAgeGroup(target *types.User, users []types.User, window int) []string {
	if target == nil || target.Age == nil {
		return nil
	}
	var group []string
	for i := range users {
		u := &users[i]
		id := NormalizeID(u.ID)
		if id == target.ID || u.Age == nil {
			continue
		}
		if *u.Age >= *target.Age-window && *u.Age <= *target.Age+window {
			group = append(group, id)
		}
	}
	return group
}

// sameCityGroup collects users whose normalized city equals the target's.
func sameCityGroup(target *types.User, users []types.User) []string {
	if target == nil || target.City == nil {
		return nil
	}
	targetCity := NormalizePlace(*target.City)
	if targetCity == "" {
		return nil
	}
	var group []string
	for i := range users {
		u := &users[i]
		id := NormalizeID(u.ID)
		if id == target.ID || u.City == nil {
			continue
		}
		if NormalizePlace(*u.City) == targetCity {
			group = append(group, id)
		}
	}
	return group
}

// coVisitationGroup collects users whose place set intersects the target's
// non-emptily. Empty when the target has visited nothing.
func coVisitationGroup(target *types.User, targetPlaces map[string]struct{}, users []types.User) []string {
	if target == nil || len(targetPlaces) == 0 {
		return nil
	}
	var group []string
	for i := range users {
		u := &users[i]
		id := NormalizeID(u.ID)
		if id == target.ID {
			continue
		}
		for _, p := range userPlaces(u) {
			if _, ok := targetPlaces[p]; ok {
				group = append(group, id)
				break
			}
		}
	}
	return group
}

// resolveTripField finds the first candidate field name present in any trip
// of the batch. Resolved once per batch, not per row.
func resolveTripField(trips []types.Trip, candidates []string) string {
	for _, name := range candidates {
		for i := range trips {
			if _, ok := trips[i].Fields[name]; ok {
				return name
			}
		}
	}
	return ""
}

// tripTimeLayouts are tried in order when a trip date arrives as a string.
var tripTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTripTime coerces a raw trip field value into a timestamp. A value
// that cannot be coerced yields a zero time, never an error.
func parseTripTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		for _, layout := range tripTimeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func tripString(t *types.Trip, field string) string {
	if s, ok := t.Fields[field].(string); ok {
		return s
	}
	return ""
}

// placeScores accumulates floating scores per normalized place while
// remembering first-encounter order so that equal scores rank stably.
type placeScores struct {
	scores map[string]float64
	order  []string
}

func newPlaceScores() *placeScores {
	return &placeScores{scores: make(map[string]float64)}
}

func (p *placeScores) add(place string, score float64) {
	if place == "" {
		return
	}
	if _, ok := p.scores[place]; !ok {
		p.order = append(p.order, place)
	}
	p.scores[place] += score
}

func (p *placeScores) empty() bool {
	return len(p.order) == 0
}

// ranked returns the top-n places by descending score. Ties keep
// first-encounter order.
func (p *placeScores) ranked(topN int) []string {
	ranked := make([]string, len(p.order))
	copy(ranked, p.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return p.scores[ranked[i]] > p.scores[ranked[j]]
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// dataSnapshot is the request-local view of the user population and trips
// log. Built fresh per request, discarded with the response.
type dataSnapshot struct {
	users []types.User
	byID  map[string]*types.User
	trips []types.Trip
}

func newDataSnapshot(users []types.User, trips []types.Trip) *dataSnapshot {
	snap := &dataSnapshot{
		users: users,
		byID:  make(map[string]*types.User, len(users)),
		trips: trips,
	}
	for i := range users {
		snap.byID[NormalizeID(users[i].ID)] = &users[i]
	}
	return snap
}

// rankGroup scores every candidate place a peer group points at and returns
// the top places, never emitting the target's own places or anything in
// exclude. Three signal passes: profile place sets (+1.0 each), group trips
// (+1.0 plus recency weight), and, when neither produced a score, an
// unweighted rescan of the full population restricted to group members.
func rankGroup(logger *slog.Logger, snap *dataSnapshot, target *types.User, group []string, topN int, exclude []string) []string {
	if len(group) == 0 {
		return nil
	}

	allExcluded := placeSet(userPlaces(target))
	for _, p := range exclude {
		if norm := NormalizePlace(p); norm != "" {
			allExcluded[norm] = struct{}{}
		}
	}
	excluded := func(place string) bool {
		_, ok := allExcluded[place]
		return ok
	}

	scores := newPlaceScores()

	// Profile-signal pass: one point per member per place.
	for _, id := range group {
		member, ok := snap.byID[id]
		if !ok {
			continue
		}
		for _, place := range userPlaces(member) {
			if !excluded(place) {
				scores.add(place, 1.0)
			}
		}
	}

	// Trip-signal pass over the group members' trips.
	groupSet := make(map[string]struct{}, len(group))
	for _, id := range group {
		groupSet[id] = struct{}{}
	}
	var groupTrips []types.Trip
	for _, t := range snap.trips {
		if _, ok := groupSet[NormalizeID(t.UserID)]; ok {
			groupTrips = append(groupTrips, t)
		}
	}

	if len(groupTrips) > 0 {
		placeField := resolveTripField(groupTrips, destinationFieldCandidates)
		if placeField != "" {
			logger.Debug("Resolved trip place field", slog.String("field", placeField))

			dateField := resolveTripField(groupTrips, tripDateFieldCandidates)
			tripTimes := make([]time.Time, len(groupTrips))
			var minDate, maxDate time.Time
			if dateField != "" {
				for i := range groupTrips {
					tripTimes[i] = parseTripTime(groupTrips[i].Fields[dateField])
					if tripTimes[i].IsZero() {
						continue
					}
					if minDate.IsZero() || tripTimes[i].Before(minDate) {
						minDate = tripTimes[i]
					}
					if maxDate.IsZero() || tripTimes[i].After(maxDate) {
						maxDate = tripTimes[i]
					}
				}
			}
			// Without a resolvable date range every trip gets a flat
			// middle-of-the-road recency.
			haveRange := !minDate.IsZero() && !maxDate.IsZero()

			for i := range groupTrips {
				place := NormalizePlace(tripString(&groupTrips[i], placeField))
				if place == "" || excluded(place) {
					continue
				}
				recency := 0.5
				if haveRange {
					recency = recencyWeight(tripTimes[i], minDate, maxDate)
				}
				scores.add(place, 1.0+recency)
			}
		}
	}

	// Broader pass: no score accumulated yet, so count raw place
	// occurrences across the population for group members only.
	if scores.empty() {
		logger.Debug("No places found from primary passes, trying broader approach")
		for i := range snap.users {
			u := &snap.users[i]
			if _, ok := groupSet[NormalizeID(u.ID)]; !ok {
				continue
			}
			for _, place := range userPlaces(u) {
				if !excluded(place) {
					scores.add(place, 1.0)
				}
			}
		}
	}

	if scores.empty() {
		return nil
	}
	return scores.ranked(topN)
}

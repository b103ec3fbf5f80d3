package recommendation

import (
	"math/rand"
	"sync"
	"time"
)

// fallbackPicker draws from the static popularity list without replacement
// and in random order. The random source is injectable so tests can pin the
// order; concurrent requests share the picker, hence the mutex around the
// (non-thread-safe) rand.Rand.
type fallbackPicker struct {
	mu     sync.Mutex
	rng    *rand.Rand
	places []string
}

func newFallbackPicker(rng *rand.Rand) *fallbackPicker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &fallbackPicker{rng: rng, places: fallbackPlaces}
}

// Pick returns up to count places not excluded, random order, no repeats.
// Fewer than count remaining just means a shorter result.
func (f *fallbackPicker) Pick(exclude []string, count int) []string {
	if count <= 0 {
		return nil
	}

	excludedSet := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		if norm := NormalizePlace(p); norm != "" {
			excludedSet[norm] = struct{}{}
		}
	}

	var available []string
	for _, place := range f.places {
		if _, ok := excludedSet[NormalizePlace(place)]; !ok {
			available = append(available, place)
		}
	}
	if len(available) == 0 {
		return nil
	}

	f.mu.Lock()
	f.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	f.mu.Unlock()

	if count > len(available) {
		count = len(available)
	}
	return available[:count]
}

// Package ranking orders a user's own titles into a deterministic
// recommendation list used by the fallback reply composer.
package ranking

import (
	"sort"
	"strings"

	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
	"github.com/rateflix/rateflix/internal/storage"
)

// Genres considered a fit for slow/cozy/calm viewing requests.
var slowGenres = map[string]bool{
	"Drama":   true,
	"Mystery": true,
	"Romance": true,
}

const maxPreferredGenres = 3

// Candidate pairs a catalog item with its genre-overlap score: the number
// of preferred genres present on the item.
type Candidate struct {
	Item       storage.CatalogItem
	MatchScore int
	// Matched lists the preferred genres found on the item, used by the
	// composer to phrase the recommendation reason.
	Matched []string
}

// Rank builds the ordered recommendation list from the profile snapshot.
//
// The candidate pool is the deduplicated union of watchlist, favorites, and
// watched titles, in that priority order, optionally restricted by the
// requested media type. An explicit genre request filters the pool and an
// empty result is terminal ("not enough data"); the slow-pace sub-filter
// instead reverts when it would empty the pool. Ordering is fully
// deterministic: overlap desc, rating desc (only when high-rated was asked),
// release year desc, then title ascending.
func Rank(p profile.TasteProfile, signals intent.Signals) []Candidate {
	combined := dedupe(p.Watchlist, p.Favorites, p.Watched)
	pool := combined

	if signals.MediaType != "" {
		pool = filter(pool, func(item storage.CatalogItem) bool {
			return item.TitleType == signals.MediaType
		})
	}

	// A type restriction that empties the pool falls back to the combined
	// pool; an explicit genre request that does so below is terminal.
	if len(pool) == 0 {
		pool = combined
	}

	preferred := signals.Genres
	if len(preferred) == 0 {
		preferred = p.TopGenres
		if len(preferred) > maxPreferredGenres {
			preferred = preferred[:maxPreferredGenres]
		}
	}

	if len(signals.Genres) > 0 {
		// Explicit request: an empty filtered pool means the library has
		// nothing to offer, and that is the answer.
		pool = filter(pool, func(item storage.CatalogItem) bool {
			return overlap(item, signals.Genres) > 0
		})
	}

	if signals.WantsSlowPace {
		slow := filter(pool, func(item storage.CatalogItem) bool {
			for _, g := range itemGenres(item) {
				if slowGenres[g] {
					return true
				}
			}
			return false
		})
		if len(slow) > 0 {
			pool = slow
		}
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, item := range pool {
		matched := matchedGenres(item, preferred)
		candidates = append(candidates, Candidate{
			Item:       item,
			MatchScore: len(matched),
			Matched:    matched,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if signals.WantsHighRated && a.Item.Rating != b.Item.Rating {
			return a.Item.Rating > b.Item.Rating
		}
		if a.Item.ReleaseYear != b.Item.ReleaseYear {
			return a.Item.ReleaseYear > b.Item.ReleaseYear
		}
		return a.Item.Title < b.Item.Title
	})

	return candidates
}

// dedupe merges the lists keeping the first occurrence of each normalized
// (trimmed, case-folded) title. List order encodes priority: a watchlist
// copy beats a favorites copy beats a watched copy.
func dedupe(lists ...[]storage.CatalogItem) []storage.CatalogItem {
	seen := make(map[string]bool)
	var out []storage.CatalogItem
	for _, list := range lists {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item.Title))
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

func filter(items []storage.CatalogItem, keep func(storage.CatalogItem) bool) []storage.CatalogItem {
	var out []storage.CatalogItem
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// itemGenres splits the comma-joined genre string.
func itemGenres(item storage.CatalogItem) []string {
	if item.Genres == "" {
		return nil
	}
	parts := strings.Split(item.Genres, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func overlap(item storage.CatalogItem, genres []string) int {
	return len(matchedGenres(item, genres))
}

func matchedGenres(item storage.CatalogItem, preferred []string) []string {
	if len(preferred) == 0 {
		return nil
	}
	have := make(map[string]bool)
	for _, g := range itemGenres(item) {
		have[strings.ToLower(g)] = true
	}
	var matched []string
	for _, g := range preferred {
		if have[strings.ToLower(g)] {
			matched = append(matched, g)
		}
	}
	return matched
}

package profile

import "github.com/rateflix/rateflix/internal/storage"

// Summary holds the aggregate counters shown in the profile context.
type Summary struct {
	TotalTitles    int     `json:"totalTitles"`
	WatchedCount   int     `json:"watchedCount"`
	WatchlistCount int     `json:"watchlistCount"`
	FavoriteCount  int     `json:"favoriteCount"`
	AvgRating      float64 `json:"avgRating"`
}

// TasteProfile is an immutable per-turn snapshot of one user's catalog
// interactions. The three filtered lists are views over AllTitles; nothing
// in the snapshot is mutated after Load returns it.
type TasteProfile struct {
	FirstName string                `json:"firstName"`
	Summary   Summary               `json:"summary"`
	TopGenres []string              `json:"topGenres"`
	AllTitles []storage.CatalogItem `json:"allTitles"`
	Favorites []storage.CatalogItem `json:"favorites"`
	Watched   []storage.CatalogItem `json:"watched"`
	Watchlist []storage.CatalogItem `json:"watchlist"`
}

// Empty reports whether the user has no catalog interactions at all.
func (p TasteProfile) Empty() bool {
	return p.Summary.TotalTitles == 0
}

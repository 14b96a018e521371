package profile

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/rateflix/rateflix/internal/storage"
)

// ErrUnavailable wraps any catalog store failure. The orchestrator degrades
// to the empty/unreachable-library reply instead of failing the turn.
var ErrUnavailable = errors.New("taste profile unavailable")

const (
	defaultTopGenres     = 6
	defaultContextTitles = 24
	maxContextTitles     = 60
)

// CatalogStore defines the read-only queries the Loader needs.
// Implemented by storage.Store.
type CatalogStore interface {
	GetUserFirstName(ctx context.Context, userID int64) (string, error)
	GetUserTitleStats(ctx context.Context, userID int64) (storage.TitleStats, error)
	GetTopGenres(ctx context.Context, userID int64, limit int) ([]string, error)
	ListUserTitles(ctx context.Context, userID int64, limit int) ([]storage.CatalogItem, error)
}

// Loader builds per-turn taste profile snapshots from the catalog store.
type Loader struct {
	store     CatalogStore
	maxTitles int
}

// NewLoader creates a Loader capping the title list at maxTitles (default 24,
// hard cap 60; values <= 0 use the default).
func NewLoader(store CatalogStore, maxTitles int) *Loader {
	if maxTitles <= 0 {
		maxTitles = defaultContextTitles
	}
	if maxTitles > maxContextTitles {
		maxTitles = maxContextTitles
	}
	return &Loader{store: store, maxTitles: maxTitles}
}

// Load fetches the user's catalog interactions and assembles a fresh
// snapshot. The four sub-queries are independent read-only reads and run
// concurrently; only their joint completion gates the return. An empty
// catalog is a first-class result, not an error. Any store failure is
// wrapped in ErrUnavailable.
func (l *Loader) Load(ctx context.Context, userID int64) (TasteProfile, error) {
	var (
		firstName string
		stats     storage.TitleStats
		topGenres []string
		titles    []storage.CatalogItem
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := l.store.GetUserFirstName(gCtx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil // defaulted below
		}
		if err != nil {
			return fmt.Errorf("fetching user: %w", err)
		}
		firstName = name
		return nil
	})
	g.Go(func() error {
		st, err := l.store.GetUserTitleStats(gCtx, userID)
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}
		stats = st
		return nil
	})
	g.Go(func() error {
		genres, err := l.store.GetTopGenres(gCtx, userID, defaultTopGenres)
		if err != nil {
			return fmt.Errorf("fetching top genres: %w", err)
		}
		topGenres = genres
		return nil
	})
	g.Go(func() error {
		items, err := l.store.ListUserTitles(gCtx, userID, l.maxTitles)
		if err != nil {
			return fmt.Errorf("fetching titles: %w", err)
		}
		titles = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return TasteProfile{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if firstName == "" {
		firstName = "User"
	}

	p := TasteProfile{
		FirstName: firstName,
		Summary: Summary{
			TotalTitles:    stats.TotalTitles,
			WatchedCount:   stats.WatchedCount,
			WatchlistCount: stats.WatchlistCount,
			FavoriteCount:  stats.FavoriteCount,
			AvgRating:      roundOneDecimal(stats.AvgRating),
		},
		TopGenres: topGenres,
		AllTitles: titles,
	}
	for _, item := range titles {
		if item.IsFavorite {
			p.Favorites = append(p.Favorites, item)
		}
		switch item.Status {
		case storage.StatusWatched:
			p.Watched = append(p.Watched, item)
		case storage.StatusWatchlist:
			p.Watchlist = append(p.Watchlist, item)
		}
	}
	return p, nil
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

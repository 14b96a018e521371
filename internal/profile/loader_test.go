package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rateflix/rateflix/internal/storage"
)

// --- mock store ---

type mockStore struct {
	firstNameFn func(ctx context.Context, userID int64) (string, error)
	statsFn     func(ctx context.Context, userID int64) (storage.TitleStats, error)
	genresFn    func(ctx context.Context, userID int64, limit int) ([]string, error)
	titlesFn    func(ctx context.Context, userID int64, limit int) ([]storage.CatalogItem, error)
}

func (m *mockStore) GetUserFirstName(ctx context.Context, userID int64) (string, error) {
	if m.firstNameFn != nil {
		return m.firstNameFn(ctx, userID)
	}
	return "Ada", nil
}

func (m *mockStore) GetUserTitleStats(ctx context.Context, userID int64) (storage.TitleStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return storage.TitleStats{}, nil
}

func (m *mockStore) GetTopGenres(ctx context.Context, userID int64, limit int) ([]string, error) {
	if m.genresFn != nil {
		return m.genresFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockStore) ListUserTitles(ctx context.Context, userID int64, limit int) ([]storage.CatalogItem, error) {
	if m.titlesFn != nil {
		return m.titlesFn(ctx, userID, limit)
	}
	return nil, nil
}

// --- tests ---

func TestLoad_EmptyCatalog(t *testing.T) {
	l := NewLoader(&mockStore{}, 0)

	p, err := l.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Empty() {
		t.Error("profile with zero titles should report Empty()")
	}
	if p.FirstName != "Ada" {
		t.Errorf("FirstName = %q, want Ada", p.FirstName)
	}
	if len(p.AllTitles) != 0 || len(p.Favorites) != 0 || len(p.Watched) != 0 || len(p.Watchlist) != 0 {
		t.Error("all title lists must be empty for an empty catalog")
	}
}

func TestLoad_SplitsListsFromAllTitles(t *testing.T) {
	items := []storage.CatalogItem{
		{TitleID: 1, Title: "Dune", IsFavorite: true, Status: storage.StatusWatched},
		{TitleID: 2, Title: "Dark", Status: storage.StatusWatched},
		{TitleID: 3, Title: "Drive", Status: storage.StatusWatchlist},
		{TitleID: 4, Title: "Arrival", IsFavorite: true},
	}
	store := &mockStore{
		statsFn: func(context.Context, int64) (storage.TitleStats, error) {
			return storage.TitleStats{TotalTitles: 4, WatchedCount: 2, WatchlistCount: 1, FavoriteCount: 2, AvgRating: 8.25}, nil
		},
		titlesFn: func(context.Context, int64, int) ([]storage.CatalogItem, error) {
			return items, nil
		},
		genresFn: func(context.Context, int64, int) ([]string, error) {
			return []string{"Sci-Fi", "Drama"}, nil
		},
	}

	p, err := NewLoader(store, 24).Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Favorites) != 2 || p.Favorites[0].Title != "Dune" || p.Favorites[1].Title != "Arrival" {
		t.Errorf("Favorites = %v", p.Favorites)
	}
	if len(p.Watched) != 2 {
		t.Errorf("got %d watched, want 2", len(p.Watched))
	}
	if len(p.Watchlist) != 1 || p.Watchlist[0].Title != "Drive" {
		t.Errorf("Watchlist = %v", p.Watchlist)
	}
	if p.Summary.AvgRating != 8.3 {
		t.Errorf("AvgRating = %g, want 8.3 (rounded to one decimal)", p.Summary.AvgRating)
	}
}

func TestLoad_MissingUserDefaultsName(t *testing.T) {
	store := &mockStore{
		firstNameFn: func(context.Context, int64) (string, error) {
			return "", storage.ErrNotFound
		},
	}

	p, err := NewLoader(store, 0).Load(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FirstName != "User" {
		t.Errorf("FirstName = %q, want User", p.FirstName)
	}
}

func TestLoad_StoreFailureWrapsErrUnavailable(t *testing.T) {
	store := &mockStore{
		statsFn: func(context.Context, int64) (storage.TitleStats, error) {
			return storage.TitleStats{}, fmt.Errorf("connection refused")
		},
	}

	_, err := NewLoader(store, 0).Load(context.Background(), 1)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestNewLoader_CapsMaxTitles(t *testing.T) {
	var gotLimit int
	store := &mockStore{
		titlesFn: func(_ context.Context, _ int64, limit int) ([]storage.CatalogItem, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	if _, err := NewLoader(store, 500).Load(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 60 {
		t.Errorf("title limit = %d, want hard cap 60", gotLimit)
	}
}

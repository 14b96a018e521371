package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Watch status values for a user-title record.
const (
	StatusWatched   = "watched"
	StatusWatchlist = "watchlist"
)

// Title type values.
const (
	TypeMovie  = "movie"
	TypeSeries = "series"
)

type User struct {
	ID        int64
	Email     string
	FirstName string
	CreatedAt time.Time
}

type Title struct {
	ID          int64
	Title       string
	TitleType   string // "movie" or "series"
	ReleaseYear int
}

// CatalogItem is a title joined with one user's interaction record.
// Genres is a comma-joined, alphabetically ordered list. Rating is 0
// when the user has not rated the title.
type CatalogItem struct {
	TitleID     int64  `json:"titleId"`
	Title       string `json:"title"`
	TitleType   string `json:"titleType"`
	ReleaseYear int    `json:"releaseYear"`
	Genres      string `json:"genres"`
	Rating      int    `json:"rating,omitempty"`
	IsFavorite  bool   `json:"isFavorite"`
	Status      string `json:"status,omitempty"` // "watched", "watchlist", or ""
}

// TitleStats aggregates one user's catalog interactions.
type TitleStats struct {
	TotalTitles    int
	WatchedCount   int
	WatchlistCount int
	FavoriteCount  int
	AvgRating      float64 // 0 when no title is rated
}

// UserTitle is the write-side record for seeding and CRUD collaborators.
type UserTitle struct {
	UserID     int64
	TitleID    int64
	Status     string // "watched", "watchlist", or ""
	Rating     int    // 0 = unrated
	IsFavorite bool
	WatchedAt  time.Time // zero when not watched
}

package provider

import (
	"fmt"
	"strings"

	"github.com/rateflix/rateflix/internal/profile"
	"github.com/rateflix/rateflix/internal/storage"
)

// systemPrompt sets the assistant persona for every external completion.
const systemPrompt = "You are RATEFLIX AI, a polite movie and series assistant. " +
	"Always keep a respectful and warm tone. " +
	"Default response language is English. " +
	"Use the provided user profile context to personalize recommendations. " +
	"Recommend concrete titles and briefly explain why they fit the user taste. " +
	"Avoid spoilers. " +
	"Keep responses concise and practical."

// Caps on how much of each list goes into the profile context. The external
// prompt stays bounded no matter how large the catalog is.
const (
	promptFavorites = 8
	promptWatched   = 10
	promptWatchlist = 10
)

// BuildProfileContext renders the taste profile as the plain-text context
// block attached to completion requests as a system message.
func BuildProfileContext(p profile.TasteProfile) string {
	topGenres := "N/A"
	if len(p.TopGenres) > 0 {
		topGenres = strings.Join(p.TopGenres, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User first name: %s\n", firstNameOrDefault(p.FirstName))
	fmt.Fprintf(&b, "Top genres: %s\n", topGenres)
	fmt.Fprintf(&b, "Stats: total=%d, watched=%d, watchlist=%d, favorites=%d, avgRating=%g\n",
		p.Summary.TotalTitles, p.Summary.WatchedCount, p.Summary.WatchlistCount,
		p.Summary.FavoriteCount, p.Summary.AvgRating)
	writeSection(&b, "Favorites", p.Favorites, promptFavorites)
	writeSection(&b, "Watched", p.Watched, promptWatched)
	writeSection(&b, "Watchlist", p.Watchlist, promptWatchlist)
	return strings.TrimRight(b.String(), "\n")
}

func firstNameOrDefault(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return "User"
}

func writeSection(b *strings.Builder, header string, items []storage.CatalogItem, limit int) {
	fmt.Fprintf(b, "%s:\n", header)
	if len(items) == 0 {
		b.WriteString("- none\n")
		return
	}
	if len(items) > limit {
		items = items[:limit]
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", formatTitle(item))
	}
}

// formatTitle renders one catalog line, e.g.
// "Dune (movie, 2021) | genres: Sci-Fi, Adventure | rating: 9/10 | tags: favorite, watched".
func formatTitle(item storage.CatalogItem) string {
	var meta []string
	if item.TitleType != "" {
		meta = append(meta, item.TitleType)
	}
	if item.ReleaseYear != 0 {
		meta = append(meta, fmt.Sprintf("%d", item.ReleaseYear))
	}
	metaStr := "Unknown"
	if len(meta) > 0 {
		metaStr = strings.Join(meta, ", ")
	}

	var flags []string
	if item.IsFavorite {
		flags = append(flags, "favorite")
	}
	if item.Status == storage.StatusWatched {
		flags = append(flags, "watched")
	}
	if item.Status == storage.StatusWatchlist {
		flags = append(flags, "watchlist")
	}

	line := fmt.Sprintf("%s (%s)", item.Title, metaStr)
	if item.Genres != "" {
		line += " | genres: " + item.Genres
	}
	if item.Rating != 0 {
		line += fmt.Sprintf(" | rating: %d/10", item.Rating)
	}
	if len(flags) > 0 {
		line += " | tags: " + strings.Join(flags, ", ")
	}
	return line
}

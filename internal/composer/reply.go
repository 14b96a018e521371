// Package composer assembles deterministic, locally computed fallback
// replies from the taste profile, intent signals, and ranked candidates.
package composer

import (
	"fmt"
	"strings"

	"github.com/rateflix/rateflix/internal/arith"
	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
	"github.com/rateflix/rateflix/internal/ranking"
	"github.com/rateflix/rateflix/internal/storage"
)

const (
	maxPicks      = 4
	maxWatchOrder = 5
)

// Compose builds the fallback reply for a turn. Pure computation: no I/O,
// always succeeds. The arithmetic check runs first regardless of classified
// intent; the remaining branches follow the classifier's precedence order.
func Compose(p profile.TasteProfile, signals intent.Signals, utterance string) string {
	lang := signals.Language

	if result, ok := arith.TrySolve(utterance); ok {
		return fmt.Sprintf(msg(BranchMathResult, lang), result)
	}

	if p.Empty() {
		return fmt.Sprintf(msg(BranchEmptyLibrary, lang), strings.TrimSpace(p.FirstName))
	}

	switch {
	case signals.AsksTurkish:
		return msg(BranchSwitchTurkish, lang)
	case signals.AsksEnglish:
		return msg(BranchSwitchEnglish, lang)
	case signals.AsksHistory:
		return msg(BranchHistory, lang)
	case signals.AsksRecommendation:
		return composePicks(p, signals, lang)
	case signals.IsSmallTalk:
		return msg(BranchSmallTalk, lang)
	case signals.IsGeneralQuestion:
		return msg(BranchQuestion, lang)
	default:
		return msg(BranchOpenChat, lang)
	}
}

func composePicks(p profile.TasteProfile, signals intent.Signals, lang intent.Language) string {
	if signals.AsksWatchOrder {
		return composeWatchOrder(p, signals, lang)
	}

	candidates := ranking.Rank(p, signals)
	if len(candidates) == 0 {
		return msg(BranchNoMatches, lang)
	}
	if len(candidates) > maxPicks {
		candidates = candidates[:maxPicks]
	}

	lines := []string{fmt.Sprintf(msg(BranchPicksIntro, lang), strings.TrimSpace(p.FirstName))}
	if len(p.TopGenres) > 0 {
		lines = append(lines, fmt.Sprintf(msg(BranchTopGenres, lang), strings.Join(p.TopGenres, ", ")))
	}
	for _, c := range candidates {
		lines = append(lines, formatPick(c, lang))
	}
	lines = append(lines, msg(BranchPicksClosing, lang))
	return strings.Join(lines, "\n")
}

func composeWatchOrder(p profile.TasteProfile, signals intent.Signals, lang intent.Language) string {
	// Watch-order requests rank only the watchlist.
	watchlistOnly := profile.TasteProfile{
		FirstName: p.FirstName,
		Summary:   p.Summary,
		TopGenres: p.TopGenres,
		Watchlist: p.Watchlist,
	}
	candidates := ranking.Rank(watchlistOnly, signals)
	if len(candidates) == 0 {
		return msg(BranchNoMatches, lang)
	}
	if len(candidates) > maxWatchOrder {
		candidates = candidates[:maxWatchOrder]
	}

	lines := []string{fmt.Sprintf(msg(BranchWatchOrder, lang), strings.TrimSpace(p.FirstName))}
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, formatPickBody(c, lang)))
	}
	lines = append(lines, msg(BranchPicksClosing, lang))
	return strings.Join(lines, "\n")
}

// formatPick renders "- Title (Type, Year) - reason".
func formatPick(c ranking.Candidate, lang intent.Language) string {
	return "- " + formatPickBody(c, lang)
}

func formatPickBody(c ranking.Candidate, lang intent.Language) string {
	reason := msg(BranchTasteMatch, lang)
	if len(c.Matched) > 0 {
		reason = strings.Join(c.Matched, ", ")
	}
	return fmt.Sprintf("%s (%s, %d) - %s", c.Item.Title, typeLabel(c.Item.TitleType, lang), c.Item.ReleaseYear, reason)
}

func typeLabel(titleType string, lang intent.Language) string {
	if titleType == storage.TypeSeries {
		return msg(BranchSeriesLabel, lang)
	}
	return msg(BranchMovieLabel, lang)
}

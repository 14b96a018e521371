package intent

import "strings"

// Signals is the per-turn classification of a single utterance. Computed
// once, never persisted.
type Signals struct {
	Language           Language
	AsksTurkish        bool
	AsksEnglish        bool
	AsksHistory        bool
	AsksRecommendation bool
	IsSmallTalk        bool
	IsGeneralQuestion  bool
	IsMediaRelated     bool

	// Recommendation qualifiers.
	MediaType      string   // "movie", "series", or "" when unspecified
	Genres         []string // canonical requested genres, table order
	WantsSlowPace  bool
	WantsHighRated bool
	AsksWatchOrder bool
}

// Classify computes the full signal bundle for an utterance. Pure and
// deterministic; matching is case-insensitive and diacritic-folded.
func Classify(utterance string) Signals {
	lower := strings.ToLower(utterance)
	folded := foldTurkish.Replace(lower)

	s := Signals{
		AsksTurkish:        matchLabel(labelSwitchTurkish, folded),
		AsksEnglish:        matchLabel(labelSwitchEnglish, folded),
		AsksHistory:        matchLabel(labelHistory, folded),
		AsksRecommendation: matchLabel(labelRecommendation, folded),
		IsMediaRelated:     matchLabel(labelMedia, folded),
		WantsSlowPace:      matchLabel(labelSlowPace, folded),
		WantsHighRated:     matchLabel(labelHighRated, folded),
		AsksWatchOrder:     matchLabel(labelWatchOrder, folded),
	}

	// Greetings co-occurring with media keywords are requests, not chit-chat.
	s.IsSmallTalk = matchLabel(labelSmallTalk, folded) && !s.IsMediaRelated

	s.IsGeneralQuestion = strings.HasSuffix(strings.TrimSpace(folded), "?") ||
		matchLabel(labelQuestionWord, folded) ||
		matchLabel(labelCountCalculate, folded)

	switch {
	case matchLabel(labelMovie, folded) && !matchLabel(labelSeries, folded):
		s.MediaType = "movie"
	case matchLabel(labelSeries, folded) && !matchLabel(labelMovie, folded):
		s.MediaType = "series"
	}

	for _, g := range genreTable {
		if g.pattern.MatchString(folded) {
			s.Genres = append(s.Genres, g.canonical)
		}
	}

	// An explicit switch request overrides the heuristic for this turn.
	switch {
	case s.AsksTurkish:
		s.Language = LangTurkish
	case s.AsksEnglish:
		s.Language = LangEnglish
	default:
		s.Language = DetectLanguage(utterance)
	}

	return s
}

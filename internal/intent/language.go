package intent

import (
	"regexp"
	"strings"
)

// Language is the detected (or explicitly requested) reply language.
type Language string

const (
	LangEnglish Language = "en"
	LangTurkish Language = "tr"
)

// Turkish-specific diacritics. Their presence is a strong Turkish signal.
var turkishDiacritics = regexp.MustCompile(`[çğıöşü]`)

var turkishWords = regexp.MustCompile(`\b(ve|ile|bir|naber|nasilsin|merhaba|selam|film|dizi|oner|oneri|izle|hangi|neden|nasil|kim|ne|turkce|favori|kategori|tavsiye)\b`)

var englishWords = regexp.MustCompile(`\b(the|and|what|which|how|why|who|movie|series|recommend|suggest|watch|favorite|favourite|category)\b`)

// foldTurkish maps Turkish diacritics to their ASCII base letters so that
// keyword tables can be written once, in ASCII, and still match text typed
// with or without diacritics.
var foldTurkish = strings.NewReplacer(
	"ç", "c",
	"ğ", "g",
	"ı", "i",
	"ö", "o",
	"ş", "s",
	"ü", "u",
)

// DetectLanguage classifies an utterance as Turkish or English by counting
// Turkish diacritic characters and bilingual keyword hits. Turkish wins only
// when its signal strictly exceeds the English one; ties go to English.
func DetectLanguage(utterance string) Language {
	lower := strings.ToLower(utterance)
	trChars := len(turkishDiacritics.FindAllString(lower, -1))
	trHits := len(turkishWords.FindAllString(foldTurkish.Replace(lower), -1))
	enHits := len(englishWords.FindAllString(lower, -1))
	if trChars+trHits > enHits {
		return LangTurkish
	}
	return LangEnglish
}

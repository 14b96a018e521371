package intent

import "regexp"

// Classification labels. Each label owns one pattern set per language; the
// classifier is the only consumer, so intent logic cannot drift across call
// sites. Patterns are written in ASCII and matched against diacritic-folded
// lowercase text.
const (
	labelSwitchTurkish  = "switch_turkish"
	labelSwitchEnglish  = "switch_english"
	labelHistory        = "history"
	labelRecommendation = "recommendation"
	labelSmallTalk      = "small_talk"
	labelQuestionWord   = "question_word"
	labelCountCalculate = "count_calculate"
	labelMedia          = "media"
	labelWatchOrder     = "watch_order"
	labelSlowPace       = "slow_pace"
	labelHighRated      = "high_rated"
	labelMovie          = "movie"
	labelSeries         = "series"
)

var patternTable = map[string]map[Language][]*regexp.Regexp{
	labelSwitchTurkish: {
		LangEnglish: compile(`\bspeak turkish\b`, `\bin turkish\b`),
		LangTurkish: compile(`\bturkce konus`, `\bturkce devam\b`, `\bturkce\b.*\bgecelim\b`),
	},
	labelSwitchEnglish: {
		LangEnglish: compile(`\bspeak english\b`, `\bin english\b`),
		LangTurkish: compile(`\bingilizce konus`, `\bingilizce devam\b`, `\bingilizce\b.*\bgecelim\b`),
	},
	labelHistory: {
		LangEnglish: compile(`\bhistory\b`, `\bteach\b`, `\bexplain\b`, `\btimeline\b`, `\bhollywood\b`, `\bindustry\b`, `\bhow did\b`),
		LangTurkish: compile(`\btarih\b`, `\bsinema tarihi\b`, `\bturk sinemasi\b`),
	},
	labelRecommendation: {
		LangEnglish: compile(`\brecommend`, `\bsuggest`, `\bpick\b`, `\bwhat should i watch\b`, `\bwatch next\b`, `\bsimilar to\b`, `\bbased on my favorites\b`, `\bwatchlist order\b`),
		LangTurkish: compile(`\btavsiye\b`, `\boner`, `\bizlemeli`, `\bizleyeyim\b`, `\bbenzer\b`, `\bhangi filmi izleyeyim\b`, `\bhangi diziyi izleyeyim\b`),
	},
	labelSmallTalk: {
		LangEnglish: compile(`\b(hi|hello|hey)\b`, `\bhow are you\b`, `\bhow r u\b`, `\bwhat'?s up\b`),
		LangTurkish: compile(`\b(selam|merhaba|naber)\b`, `\bnasilsin\b`),
	},
	labelQuestionWord: {
		LangEnglish: compile(`\b(what|which|who|why|how|when|where|can you|do you|is|are)\b`),
		LangTurkish: compile(`\b(ne|kim|neden|nasil|hangi|nerede|ne zaman|sence)\b`),
	},
	labelCountCalculate: {
		LangEnglish: compile(`\b(count|calculate)\b`),
		LangTurkish: compile(`\bkac\b`, `\bhesapla\b`),
	},
	labelMedia: {
		LangEnglish: compile(`\b(movie|movies|film|films|series|show|shows|episode|season|genre|watch|watched|watchlist|favorite|favourite|actor|director|cinema)\b`),
		LangTurkish: compile(`\b(dizi|diziler|izle|izledim|sinema|oyuncu|yonetmen|tur|kategori|favori)\b`),
	},
	labelWatchOrder: {
		LangEnglish: compile(`\bwatchlist order\b`, `\bwatch order\b`, `\border.*watchlist\b`, `\bwatchlist.*first\b`),
		LangTurkish: compile(`\bizleme siras`, `\blistemden once\b`, `\blistemde once\b`),
	},
	labelSlowPace: {
		LangEnglish: compile(`\bslow\b`, `\bcozy\b`, `\bcalm\b`, `\brelax`),
		LangTurkish: compile(`\bsakin\b`, `\byavas\b`, `\brahatlatici\b`),
	},
	labelHighRated: {
		LangEnglish: compile(`\bhigh rated\b`, `\bhighly rated\b`, `\btop rated\b`, `\bbest rated\b`),
		LangTurkish: compile(`\ben iyi\b`, `\byuksek puan`),
	},
	labelMovie: {
		LangEnglish: compile(`\b(movie|movies|film|films)\b`),
		LangTurkish: compile(`\bfilm\b`, `\bfilmler\b`),
	},
	labelSeries: {
		LangEnglish: compile(`\b(series|show|shows)\b`),
		LangTurkish: compile(`\bdizi\b`, `\bdiziler\b`),
	},
}

// genreTable maps bilingual genre keywords to the catalog's canonical genre
// names. Matching happens on diacritic-folded lowercase text.
var genreTable = []struct {
	canonical string
	pattern   *regexp.Regexp
}{
	{"Action", regexp.MustCompile(`\b(action|aksiyon)\b`)},
	{"Adventure", regexp.MustCompile(`\b(adventure|macera)\b`)},
	{"Animation", regexp.MustCompile(`\b(animation|animated|animasyon)\b`)},
	{"Comedy", regexp.MustCompile(`\b(comedy|komedi)\b`)},
	{"Crime", regexp.MustCompile(`\b(crime|suc|polisiye)\b`)},
	{"Documentary", regexp.MustCompile(`\b(documentary|belgesel)\b`)},
	{"Drama", regexp.MustCompile(`\b(drama|dram)\b`)},
	{"Fantasy", regexp.MustCompile(`\b(fantasy|fantastik)\b`)},
	{"Horror", regexp.MustCompile(`\b(horror|korku)\b`)},
	{"Mystery", regexp.MustCompile(`\b(mystery|gizem)\b`)},
	{"Romance", regexp.MustCompile(`\b(romance|romantic|romantik)\b`)},
	{"Sci-Fi", regexp.MustCompile(`\b(sci-?fi|science fiction|bilim kurgu)\b`)},
	{"Thriller", regexp.MustCompile(`\b(thriller|gerilim)\b`)},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// matchLabel reports whether any pattern registered for label, in any
// language, matches the folded text.
func matchLabel(label, folded string) bool {
	for _, patterns := range patternTable[label] {
		for _, re := range patterns {
			if re.MatchString(folded) {
				return true
			}
		}
	}
	return false
}

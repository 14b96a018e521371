package composer

import "github.com/rateflix/rateflix/internal/intent"

// Branch identifies a reply template family. Every branch has one template
// per supported language; control flow picks the branch, the catalog picks
// the words.
type Branch string

const (
	BranchMathResult    Branch = "math_result"
	BranchEmptyLibrary  Branch = "empty_library"
	BranchSwitchTurkish Branch = "switch_turkish"
	BranchSwitchEnglish Branch = "switch_english"
	BranchHistory       Branch = "history"
	BranchPicksIntro    Branch = "picks_intro"
	BranchWatchOrder    Branch = "watch_order_intro"
	BranchNoMatches     Branch = "no_matches"
	BranchPicksClosing  Branch = "picks_closing"
	BranchTopGenres     Branch = "top_genres"
	BranchSmallTalk     Branch = "small_talk"
	BranchQuestion      Branch = "question"
	BranchOpenChat      Branch = "open_chat"
	BranchTasteMatch    Branch = "taste_match"
	BranchMovieLabel    Branch = "movie_label"
	BranchSeriesLabel   Branch = "series_label"
)

var messages = map[Branch]map[intent.Language]string{
	BranchMathResult: {
		intent.LangEnglish: "The result is: %s",
		intent.LangTurkish: "Sonuc: %s",
	},
	BranchEmptyLibrary: {
		intent.LangEnglish: "Hi %s\n\nYour list is still empty. Please add a few movies or series so I can personalize recommendations better.\nYou can start from the Explore page.",
		intent.LangTurkish: "Merhaba %s\n\nListen henuz bos. Sana daha iyi oneriler hazirlayabilmem icin birkac film veya dizi ekle.\nKesfet sayfasindan baslayabilirsin.",
	},
	BranchSwitchTurkish: {
		intent.LangEnglish: "Tabii, Turkce devam edelim. Genel sohbet edebiliriz.",
		intent.LangTurkish: "Tabii, Turkce devam edelim. Genel sohbet edebiliriz.",
	},
	BranchSwitchEnglish: {
		intent.LangEnglish: "Sure, we can continue in English.",
		intent.LangTurkish: "Sure, we can continue in English.",
	},
	BranchHistory: {
		intent.LangEnglish: "Quick Hollywood timeline:\n- 1910s-1920s: Silent era.\n- 1930s-1950s: Classic studio system.\n- 1960s-1970s: New Hollywood.\n- 1980s-1990s: Blockbuster era.\n- 2000s-2010s: Franchise/IP and digital VFX growth.\n- 2020s: Streaming-first distribution.\nIf you want, I can expand one era in detail.",
		intent.LangTurkish: "Kisa Hollywood tarihi ozeti:\n- 1910-1920: Sessiz sinema donemi.\n- 1930-1950: Klasik studio sistemi.\n- 1960-1970: New Hollywood, yonetmen odakli donem.\n- 1980-1990: Blockbuster cagi.\n- 2000-2010: Franchise/IP ve dijital VFX buyumesi.\n- 2020+: Streaming agirlikli dagitim modelleri.\nIstersen tek bir donemi detaylandirayim.",
	},
	BranchPicksIntro: {
		intent.LangEnglish: "Hi %s\n\nI could not reach the AI provider right now, but I prepared a quick and polite recommendation plan from your list:",
		intent.LangTurkish: "Merhaba %s\n\nSu an AI saglayicisina ulasamiyorum, ama listenden hizli ve ozenli bir oneri plani hazirladim:",
	},
	BranchWatchOrder: {
		intent.LangEnglish: "Hi %s\n\nHere is a good order for your watchlist:",
		intent.LangTurkish: "Merhaba %s\n\nIzleme listen icin iyi bir sira:",
	},
	BranchNoMatches: {
		intent.LangEnglish: "I looked through your list but could not find titles matching that request yet. Adding a few titles in that genre would help me narrow things down next time.",
		intent.LangTurkish: "Listene baktim ama bu istege uyan bir sey bulamadim. O turden birkac baslik eklersen bir dahaki sefere daha iyi daraltabilirim.",
	},
	BranchPicksClosing: {
		intent.LangEnglish: `- Ask me things like "one movie for tonight" or "5 series similar to my favorites" and I will narrow it down.`,
		intent.LangTurkish: `- "Bu aksamlik bir film" ya da "favorilerime benzer 5 dizi" gibi sorular sor, secenekleri daraltayim.`,
	},
	BranchTopGenres: {
		intent.LangEnglish: "- Your top genres: %s.",
		intent.LangTurkish: "- En cok izledigin turler: %s.",
	},
	BranchSmallTalk: {
		intent.LangEnglish: "I am doing well, thanks. How are you? We can keep chatting.",
		intent.LangTurkish: "Iyiyim, tesekkurler. Sen nasilsin? Istiyorsan sohbet edelim.",
	},
	BranchQuestion: {
		intent.LangEnglish: "I got your question. I am currently in local fallback mode, but I will still try to help.",
		intent.LangTurkish: "Sorunu aldim. Simdi local fallback moddayim ama yardim etmeye calisiyorum.",
	},
	BranchOpenChat: {
		intent.LangEnglish: "I am here. Send your message and we can continue in chat mode.",
		intent.LangTurkish: "Buradayim. Istegini yaz, sohbet ederek devam edelim.",
	},
	BranchTasteMatch: {
		intent.LangEnglish: "taste match",
		intent.LangTurkish: "zevk uyumu",
	},
	BranchMovieLabel: {
		intent.LangEnglish: "Movie",
		intent.LangTurkish: "Film",
	},
	BranchSeriesLabel: {
		intent.LangEnglish: "Series",
		intent.LangTurkish: "Dizi",
	},
}

// msg returns the template for (branch, language), falling back to English
// when a branch has no template for the requested language.
func msg(branch Branch, lang intent.Language) string {
	byLang, ok := messages[branch]
	if !ok {
		return ""
	}
	if m, ok := byLang[lang]; ok {
		return m
	}
	return byLang[intent.LangEnglish]
}

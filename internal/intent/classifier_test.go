package intent

import (
	"testing"
)

func TestClassify_Recommendation(t *testing.T) {
	s := Classify("recommend a sci-fi movie")
	if !s.AsksRecommendation {
		t.Error("AsksRecommendation = false, want true")
	}
	if !s.IsMediaRelated {
		t.Error("IsMediaRelated = false, want true")
	}
	if s.MediaType != "movie" {
		t.Errorf("MediaType = %q, want movie", s.MediaType)
	}
	if len(s.Genres) != 1 || s.Genres[0] != "Sci-Fi" {
		t.Errorf("Genres = %v, want [Sci-Fi]", s.Genres)
	}
	if s.Language != LangEnglish {
		t.Errorf("Language = %q, want en", s.Language)
	}
}

func TestClassify_TurkishRecommendation(t *testing.T) {
	s := Classify("Bana benzer bir dizi tavsiye eder misin?")
	if !s.AsksRecommendation {
		t.Error("AsksRecommendation = false, want true")
	}
	if s.MediaType != "series" {
		t.Errorf("MediaType = %q, want series", s.MediaType)
	}
	if s.Language != LangTurkish {
		t.Errorf("Language = %q, want tr", s.Language)
	}
}

func TestClassify_ExplicitSwitchOverridesDetection(t *testing.T) {
	// The sentence itself reads as English; the explicit request wins.
	s := Classify("Can we speak Turkish from now on?")
	if !s.AsksTurkish {
		t.Error("AsksTurkish = false, want true")
	}
	if s.Language != LangTurkish {
		t.Errorf("Language = %q, want tr (explicit switch overrides heuristic)", s.Language)
	}

	s = Classify("Artık ingilizce konuşalım lütfen.")
	if !s.AsksEnglish {
		t.Error("AsksEnglish = false, want true")
	}
	if s.Language != LangEnglish {
		t.Errorf("Language = %q, want en", s.Language)
	}
}

func TestClassify_SmallTalk(t *testing.T) {
	s := Classify("hi, how are you?")
	if !s.IsSmallTalk {
		t.Error("IsSmallTalk = false, want true")
	}

	// A greeting alongside media keywords is a request, not chit-chat.
	s = Classify("hey, recommend me a movie")
	if s.IsSmallTalk {
		t.Error("IsSmallTalk = true, want false when media keywords co-occur")
	}
	if !s.AsksRecommendation {
		t.Error("AsksRecommendation = false, want true")
	}
}

func TestClassify_History(t *testing.T) {
	s := Classify("Tell me a short history of Hollywood.")
	if !s.AsksHistory {
		t.Error("AsksHistory = false, want true")
	}

	s = Classify("Türk sineması tarihi hakkında bilgi verir misin?")
	if !s.AsksHistory {
		t.Error("AsksHistory = false for Turkish history question, want true")
	}
	if s.Language != LangTurkish {
		t.Errorf("Language = %q, want tr", s.Language)
	}
}

func TestClassify_GeneralQuestion(t *testing.T) {
	cases := []struct {
		utterance string
		want      bool
	}{
		{"Does this end with a question mark?", true},
		{"what time does it start", true},
		{"kac tane film izledim", true},
		{"count my watched titles", true},
		{"good morning everyone", false},
	}
	for _, tc := range cases {
		if got := Classify(tc.utterance).IsGeneralQuestion; got != tc.want {
			t.Errorf("Classify(%q).IsGeneralQuestion = %v, want %v", tc.utterance, got, tc.want)
		}
	}
}

func TestClassify_WatchOrderAndQualifiers(t *testing.T) {
	s := Classify("what should I watch first from my watchlist order?")
	if !s.AsksWatchOrder {
		t.Error("AsksWatchOrder = false, want true")
	}

	s = Classify("suggest a slow cozy highly rated drama series")
	if !s.WantsSlowPace {
		t.Error("WantsSlowPace = false, want true")
	}
	if !s.WantsHighRated {
		t.Error("WantsHighRated = false, want true")
	}
	if s.MediaType != "series" {
		t.Errorf("MediaType = %q, want series", s.MediaType)
	}
	if len(s.Genres) != 1 || s.Genres[0] != "Drama" {
		t.Errorf("Genres = %v, want [Drama]", s.Genres)
	}
}

func TestClassify_MediaTypeAmbiguous(t *testing.T) {
	// Both movie and series mentioned: no type restriction.
	s := Classify("recommend a movie or a series")
	if s.MediaType != "" {
		t.Errorf("MediaType = %q, want empty when both types mentioned", s.MediaType)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	const utterance = "recommend a slow sci-fi drama movie, merhaba"
	first := Classify(utterance)
	for i := 0; i < 10; i++ {
		got := Classify(utterance)
		if len(got.Genres) != len(first.Genres) {
			t.Fatalf("run %d: Genres = %v, want %v", i, got.Genres, first.Genres)
		}
		for j := range got.Genres {
			if got.Genres[j] != first.Genres[j] {
				t.Fatalf("run %d: Genres = %v, want %v (stable order)", i, got.Genres, first.Genres)
			}
		}
	}
}

var englishCorpus = []string{
	"What should I watch tonight?",
	"Recommend a good movie for the weekend.",
	"How are you doing today?",
	"Tell me about the history of Hollywood.",
	"Which series should I start next?",
	"I loved the soundtrack and the acting.",
	"Why do you like thrillers so much?",
	"Can you suggest something similar to Dune?",
	"Who directed that movie?",
	"My favorite genre is science fiction.",
	"The weather is nice today.",
	"What is two plus two?",
	"I want to watch a documentary.",
	"How long is the first season?",
	"Suggest five movies from my watchlist.",
	"Do you have a favourite director?",
	"What happened in the final episode?",
	"I would recommend it to anyone.",
	"Which one is better, the book or the show?",
	"Hello, how is it going?",
}

var turkishCorpus = []string{
	"Bana güzel bir film önerir misin?",
	"Bu akşam hangi diziyi izlesem?",
	"Merhaba, nasılsın?",
	"Türk sineması hakkında ne düşünüyorsun?",
	"En sevdiğim tür bilim kurgu.",
	"Listemde çok fazla dizi ve film birikti.",
	"Selam, naber?",
	"Bana benzer filmler öner lütfen.",
	"Bu dizinin konusu çok güzel.",
	"Hangi filmi izleyeyim karar veremiyorum.",
	"Komedi filmleri beni her zaman güldürür.",
	"Yarın akşam sinemaya gidiyoruz.",
	"Bu aralar ne izlemeliyim sence?",
	"Favori yönetmenin kim senin?",
	"Film önerisi istiyorum, tavsiye verir misin?",
	"Korku filmlerinden pek hoşlanmam.",
	"Sayıları benim için toplar mısın?",
	"Dün izlediğim dizi harikaydı.",
	"Bana bir şeyler öner.",
	"Bugün hava çok güzel.",
}

func TestDetectLanguage_Corpus(t *testing.T) {
	total := len(englishCorpus) + len(turkishCorpus)
	correct := 0

	for _, sentence := range englishCorpus {
		if DetectLanguage(sentence) == LangEnglish {
			correct++
		} else {
			t.Logf("misclassified as Turkish: %q", sentence)
		}
	}
	for _, sentence := range turkishCorpus {
		if DetectLanguage(sentence) == LangTurkish {
			correct++
		} else {
			t.Logf("misclassified as English: %q", sentence)
		}
	}

	accuracy := float64(correct) / float64(total)
	if accuracy < 0.95 {
		t.Errorf("corpus accuracy = %.2f (%d/%d), want >= 0.95", accuracy, correct, total)
	}
}

func TestDetectLanguage_TieGoesToEnglish(t *testing.T) {
	if got := DetectLanguage("okay"); got != LangEnglish {
		t.Errorf("DetectLanguage(neutral) = %q, want en", got)
	}
}

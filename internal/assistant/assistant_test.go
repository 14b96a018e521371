package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
	"github.com/rateflix/rateflix/internal/provider"
	"github.com/rateflix/rateflix/internal/storage"
)

type mockLoader struct {
	loadFn func(ctx context.Context, userID int64) (profile.TasteProfile, error)
}

func (m *mockLoader) Load(ctx context.Context, userID int64) (profile.TasteProfile, error) {
	return m.loadFn(ctx, userID)
}

type mockCompleter struct {
	configured bool
	completeFn func(ctx context.Context, history []provider.ChatMessage, p profile.TasteProfile, signals intent.Signals) (string, error)
}

func (m *mockCompleter) Configured() bool { return m.configured }

func (m *mockCompleter) Complete(ctx context.Context, history []provider.ChatMessage, p profile.TasteProfile, signals intent.Signals) (string, error) {
	return m.completeFn(ctx, history, p, signals)
}

func loaderFor(p profile.TasteProfile) *mockLoader {
	return &mockLoader{loadFn: func(context.Context, int64) (profile.TasteProfile, error) {
		return p, nil
	}}
}

func seededProfile() profile.TasteProfile {
	return profile.TasteProfile{
		FirstName: "Ada",
		Summary:   profile.Summary{TotalTitles: 1, FavoriteCount: 1},
		TopGenres: []string{"Sci-Fi"},
		Favorites: []storage.CatalogItem{
			{Title: "Dune", TitleType: storage.TypeMovie, ReleaseYear: 2021, Genres: "Sci-Fi, Adventure", IsFavorite: true},
		},
	}
}

func userTurn(content string) []provider.ChatMessage {
	return []provider.ChatMessage{{Role: provider.RoleUser, Content: content}}
}

func TestNormalizeMessages(t *testing.T) {
	a := New(loaderFor(profile.TasteProfile{}), nil, Options{MaxHistory: 3})

	got := a.NormalizeMessages([]provider.ChatMessage{
		{Role: "system", Content: "ignore me"},
		{Role: provider.RoleUser, Content: "  first  "},
		{Role: provider.RoleAssistant, Content: ""},
		{Role: provider.RoleAssistant, Content: "second"},
		{Role: provider.RoleUser, Content: "third"},
		{Role: provider.RoleUser, Content: "fourth"},
	}, "")

	want := []provider.ChatMessage{
		{Role: provider.RoleAssistant, Content: "second"},
		{Role: provider.RoleUser, Content: "third"},
		{Role: provider.RoleUser, Content: "fourth"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNormalizeMessages_ClampsContent(t *testing.T) {
	a := New(loaderFor(profile.TasteProfile{}), nil, Options{MaxContentChars: 10})
	got := a.NormalizeMessages(userTurn(strings.Repeat("x", 50)), "")
	if len(got) != 1 || len(got[0].Content) != 10 {
		t.Errorf("content not clamped: %+v", got)
	}
}

func TestNormalizeMessages_SingleMessageConvenience(t *testing.T) {
	a := New(loaderFor(profile.TasteProfile{}), nil, Options{})

	got := a.NormalizeMessages(nil, "  hello  ")
	if len(got) != 1 || got[0].Role != provider.RoleUser || got[0].Content != "hello" {
		t.Errorf("got %+v, want a single user turn", got)
	}

	// The single message is a fallback, not an addition.
	got = a.NormalizeMessages(userTurn("real history"), "hello")
	if len(got) != 1 || got[0].Content != "real history" {
		t.Errorf("got %+v, want only the history turn", got)
	}
}

func TestNormalizeMessages_HistoryCapAtTwenty(t *testing.T) {
	a := New(loaderFor(profile.TasteProfile{}), nil, Options{MaxHistory: 100})
	var msgs []provider.ChatMessage
	for range 30 {
		msgs = append(msgs, provider.ChatMessage{Role: provider.RoleUser, Content: "hi"})
	}
	if got := a.NormalizeMessages(msgs, ""); len(got) != 20 {
		t.Errorf("got %d messages, want hard cap of 20", len(got))
	}
}

func TestRespond_ValidationErrors(t *testing.T) {
	a := New(loaderFor(seededProfile()), nil, Options{})

	if _, err := a.Respond(context.Background(), 1, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty input: err = %v, want ErrValidation", err)
	}

	assistantOnly := []provider.ChatMessage{{Role: provider.RoleAssistant, Content: "hi"}}
	if _, err := a.Respond(context.Background(), 1, assistantOnly); !errors.Is(err, ErrValidation) {
		t.Errorf("assistant-only input: err = %v, want ErrValidation", err)
	}
}

func TestRespond_ExternalSuccess(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		completeFn: func(_ context.Context, history []provider.ChatMessage, p profile.TasteProfile, _ intent.Signals) (string, error) {
			if len(history) != 1 || p.FirstName != "Ada" {
				t.Errorf("completer got history=%+v profile=%q", history, p.FirstName)
			}
			return "Try Dune.", nil
		},
	}
	a := New(loaderFor(seededProfile()), completer, Options{Version: "starter-1.2"})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if res.Provider != ProviderExternal || res.UsedFallback {
		t.Errorf("result = %+v, want external provider", res)
	}
	if res.Reply != "Try Dune." || res.FallbackReason != "" {
		t.Errorf("result = %+v, want clean external reply", res)
	}
	if res.AssistantVersion != "starter-1.2" || res.TurnID == "" {
		t.Errorf("result metadata = %+v", res)
	}
}

func TestRespond_NoProviderConfigured(t *testing.T) {
	completer := &mockCompleter{configured: false}
	a := New(loaderFor(seededProfile()), completer, Options{})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !res.UsedFallback || res.Provider != ProviderFallback {
		t.Errorf("result = %+v, want fallback", res)
	}
	if res.FallbackReason != "provider not configured" {
		t.Errorf("fallbackReason = %q", res.FallbackReason)
	}
	if !strings.Contains(res.Reply, "Dune") {
		t.Errorf("reply = %q, want local picks from the profile", res.Reply)
	}
}

func TestRespond_ForceFallbackSkipsProvider(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		completeFn: func(context.Context, []provider.ChatMessage, profile.TasteProfile, intent.Signals) (string, error) {
			t.Error("completer must not be called in forced fallback mode")
			return "", nil
		},
	}
	a := New(loaderFor(seededProfile()), completer, Options{ForceFallback: true})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !res.UsedFallback || res.FallbackReason != "fallback forced by configuration" {
		t.Errorf("result = %+v", res)
	}
}

func TestRespond_ProviderTimeoutFallsBack(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		completeFn: func(context.Context, []provider.ChatMessage, profile.TasteProfile, intent.Signals) (string, error) {
			return "", provider.ErrTimeout
		},
	}
	a := New(loaderFor(seededProfile()), completer, Options{})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if res.Provider != ProviderFallback || !res.UsedFallback {
		t.Errorf("result = %+v, want fallback after timeout", res)
	}
	if res.FallbackReason == "" {
		t.Error("fallbackReason must be recorded on timeout")
	}
	if res.Reply == "" {
		t.Error("fallback reply must not be empty")
	}
}

func TestRespond_ProviderErrorReasonIncludesStatus(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		completeFn: func(context.Context, []provider.ChatMessage, profile.TasteProfile, intent.Signals) (string, error) {
			return "", &provider.ProviderError{Status: 402, Detail: "Insufficient Balance"}
		},
	}
	a := New(loaderFor(seededProfile()), completer, Options{})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(res.FallbackReason, "402") {
		t.Errorf("fallbackReason = %q, want the provider status", res.FallbackReason)
	}
}

func TestRespond_ProfileUnavailableDegrades(t *testing.T) {
	loader := &mockLoader{loadFn: func(context.Context, int64) (profile.TasteProfile, error) {
		return profile.TasteProfile{}, profile.ErrUnavailable
	}}
	completer := &mockCompleter{
		configured: true,
		completeFn: func(context.Context, []provider.ChatMessage, profile.TasteProfile, intent.Signals) (string, error) {
			t.Error("completer must not be called without a profile")
			return "", nil
		},
	}
	a := New(loader, completer, Options{})

	res, err := a.Respond(context.Background(), 1, userTurn("recommend a movie"))
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !res.UsedFallback || res.FallbackReason != "profile unavailable" {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(res.Reply, "empty") {
		t.Errorf("reply = %q, want the empty-library branch", res.Reply)
	}
}

func TestRespond_CallerCancellationPropagates(t *testing.T) {
	completer := &mockCompleter{
		configured: true,
		completeFn: func(ctx context.Context, _ []provider.ChatMessage, _ profile.TasteProfile, _ intent.Signals) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	a := New(loaderFor(seededProfile()), completer, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := a.Respond(ctx, 1, userTurn("recommend a movie"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want the caller's context error", err)
	}
}

func TestRespond_ClassifiesLastUserMessage(t *testing.T) {
	completer := &mockCompleter{configured: false}
	a := New(loaderFor(seededProfile()), completer, Options{})

	history := []provider.ChatMessage{
		{Role: provider.RoleUser, Content: "tell me about hollywood history"},
		{Role: provider.RoleAssistant, Content: "sure"},
		{Role: provider.RoleUser, Content: "what is 2 plus 2"},
	}
	res, err := a.Respond(context.Background(), 1, history)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(res.Reply, "4") {
		t.Errorf("reply = %q, want the arithmetic answer for the last user turn", res.Reply)
	}
}

// Package assistant orchestrates one conversational turn: input
// normalization, profile loading, intent classification, the external
// completion attempt, and the local fallback path.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rateflix/rateflix/internal/composer"
	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
	"github.com/rateflix/rateflix/internal/provider"
)

// Default limits for inbound conversation history.
const (
	DefaultMaxHistory      = 8
	MaxHistoryCap          = 20
	DefaultMaxContentChars = 1600
)

// Provider values reported in AssistantResult.
const (
	ProviderExternal = "external"
	ProviderFallback = "fallback"
)

// ErrValidation marks malformed turn input. It is the only error kind the
// caller sees as a failure; everything else degrades to a fallback reply.
var ErrValidation = errors.New("invalid turn input")

// ProfileLoader supplies per-user taste snapshots.
type ProfileLoader interface {
	Load(ctx context.Context, userID int64) (profile.TasteProfile, error)
}

// Completer is the external completion gateway.
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, history []provider.ChatMessage, p profile.TasteProfile, signals intent.Signals) (string, error)
}

// Result is the outcome of one turn. UsedFallback is true exactly when
// Provider is "fallback"; FallbackReason is empty on external success.
type Result struct {
	Reply            string `json:"reply"`
	Provider         string `json:"provider"`
	UsedFallback     bool   `json:"usedFallback"`
	FallbackReason   string `json:"fallbackReason,omitempty"`
	AssistantVersion string `json:"assistantVersion"`
	TurnID           string `json:"turnId"`
}

// Options tunes one Assistant instance.
type Options struct {
	MaxHistory      int
	MaxContentChars int
	ForceFallback   bool
	Version         string
}

// Assistant answers conversation turns. Safe for concurrent use.
type Assistant struct {
	loader        ProfileLoader
	completer     Completer
	maxHistory    int
	maxContent    int
	forceFallback bool
	version       string
}

func New(loader ProfileLoader, completer Completer, opts Options) *Assistant {
	maxHistory := opts.MaxHistory
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	if maxHistory > MaxHistoryCap {
		maxHistory = MaxHistoryCap
	}
	maxContent := opts.MaxContentChars
	if maxContent <= 0 {
		maxContent = DefaultMaxContentChars
	}

	return &Assistant{
		loader:        loader,
		completer:     completer,
		maxHistory:    maxHistory,
		maxContent:    maxContent,
		forceFallback: opts.ForceFallback,
		version:       opts.Version,
	}
}

// NormalizeMessages filters the inbound history down to trimmed, non-empty
// user and assistant turns, clamps each content to maxContent runes, and
// keeps only the last maxHistory entries. A non-empty single message is
// accepted when the history itself normalizes to nothing.
func (a *Assistant) NormalizeMessages(messages []provider.ChatMessage, single string) []provider.ChatMessage {
	var normalized []provider.ChatMessage
	for _, m := range messages {
		if m.Role != provider.RoleUser && m.Role != provider.RoleAssistant {
			continue
		}
		content := clampRunes(strings.TrimSpace(m.Content), a.maxContent)
		if content == "" {
			continue
		}
		normalized = append(normalized, provider.ChatMessage{Role: m.Role, Content: content})
	}

	if len(normalized) == 0 {
		if content := clampRunes(strings.TrimSpace(single), a.maxContent); content != "" {
			normalized = append(normalized, provider.ChatMessage{Role: provider.RoleUser, Content: content})
		}
	}

	if len(normalized) > a.maxHistory {
		normalized = normalized[len(normalized)-a.maxHistory:]
	}
	return normalized
}

// Respond runs one turn for the given user. The messages must already be
// normalized; Respond validates that at least one user turn remains.
func (a *Assistant) Respond(ctx context.Context, userID int64, messages []provider.ChatMessage) (Result, error) {
	if len(messages) == 0 {
		return Result{}, fmt.Errorf("%w: please enter a message", ErrValidation)
	}
	lastUser := ""
	for _, m := range messages {
		if m.Role == provider.RoleUser {
			lastUser = m.Content
		}
	}
	if lastUser == "" {
		return Result{}, fmt.Errorf("%w: a user message is required", ErrValidation)
	}

	turnID := uuid.NewString()

	p, err := a.loader.Load(ctx, userID)
	if err != nil {
		// A missing taste profile degrades the turn, it does not fail it.
		slog.Warn("taste profile unavailable, degrading to fallback", "turn_id", turnID, "error", err)
		p = profile.TasteProfile{}
	}
	signals := intent.Classify(lastUser)

	reason := ""
	switch {
	case err != nil:
		reason = "profile unavailable"
	case a.forceFallback:
		reason = "fallback forced by configuration"
	case a.completer == nil || !a.completer.Configured():
		reason = "provider not configured"
	default:
		reply, completeErr := a.completer.Complete(ctx, messages, p, signals)
		if completeErr == nil {
			return a.result(turnID, reply, ProviderExternal, ""), nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		slog.Warn("completion failed, using fallback", "turn_id", turnID, "error", completeErr)
		reason = fallbackReason(completeErr)
	}

	reply := composer.Compose(p, signals, lastUser)
	return a.result(turnID, reply, ProviderFallback, reason), nil
}

func (a *Assistant) result(turnID, reply, providerName, reason string) Result {
	return Result{
		Reply:            reply,
		Provider:         providerName,
		UsedFallback:     providerName == ProviderFallback,
		FallbackReason:   reason,
		AssistantVersion: a.version,
		TurnID:           turnID,
	}
}

func fallbackReason(err error) string {
	var provErr *provider.ProviderError
	switch {
	case errors.Is(err, provider.ErrTimeout):
		return "provider timed out"
	case errors.As(err, &provErr):
		return fmt.Sprintf("provider error (HTTP %d)", provErr.Status)
	default:
		return "provider request failed"
	}
}

func clampRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

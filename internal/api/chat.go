// Package api exposes the assistant over HTTP and MCP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/rateflix/rateflix/internal/assistant"
	"github.com/rateflix/rateflix/internal/provider"
)

const maxRequestBodySize = 1 << 20 // 1MB

// ChatRequest is the inbound turn. Message is a single-turn convenience
// alternative to Messages.
type ChatRequest struct {
	UserID   int64                  `json:"userId"`
	Messages []provider.ChatMessage `json:"messages"`
	Message  string                 `json:"message"`
}

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Assistant *assistant.Assistant
	Token     string
}

// NewHandler returns the HTTP API. The health endpoint is open; everything
// else requires the bearer token.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))
		r.Post("/ai/chat", handleChat(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.UserID <= 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "userId is required")
			return
		}

		messages := deps.Assistant.NormalizeMessages(req.Messages, req.Message)
		result, err := deps.Assistant.Respond(r.Context(), req.UserID, messages)
		if err != nil {
			if errors.Is(err, assistant.ErrValidation) {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "turn failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

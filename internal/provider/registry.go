package provider

import (
	"fmt"
	"sync"
)

// Registry hands out completion clients keyed by their settings. Clients are
// built lazily and shared so that circuit breaker state survives across
// turns with the same configuration; changing the settings yields a fresh
// client with a fresh breaker.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Get returns the shared client for the given settings.
func (r *Registry) Get(s Settings) *Client {
	key := fingerprint(s)

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[key]; ok {
		return c
	}
	c := NewClient(s)
	r.clients[key] = c
	return c
}

func fingerprint(s Settings) string {
	return fmt.Sprintf("%s|%s|%s|%s", s.APIKey, s.BaseURL, s.Model, s.Timeout)
}

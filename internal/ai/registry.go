package ai

import (
	"strings"
	"sync"
)

// Registry holds the providers that were configured at startup. A provider
// whose secret is absent is never registered, so a lookup miss means
// "not configured" to callers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) {
	name := strings.ToLower(strings.TrimSpace(p.Name()))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

func (r *Registry) Get(name string) (Provider, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

func (r *Registry) Configured(name string) bool {
	_, ok := r.Get(name)
	return ok
}

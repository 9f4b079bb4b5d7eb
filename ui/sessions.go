package ui

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Sessions is an expiring in-memory store of controllers keyed by UUID.
// A session expires after ttl without being looked up.
type Sessions struct {
	flows Flows
	cache *cache.Cache
}

// NewSessions creates an empty store
func NewSessions(flows Flows, ttl time.Duration) *Sessions {
	return &Sessions{
		flows: flows,
		cache: cache.New(ttl, ttl),
	}
}

// Create starts a new session with an empty state
func (s *Sessions) Create() (string, *Controller) {
	id := uuid.NewString()
	controller := NewController(s.flows)
	s.cache.SetDefault(id, controller)
	return id, controller
}

// Get returns the session's controller and extends its lifetime
func (s *Sessions) Get(id string) (*Controller, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}

	controller := value.(*Controller)
	// Replace fails if the session was deleted since the lookup
	if err := s.cache.Replace(id, controller, cache.DefaultExpiration); err != nil {
		return nil, false
	}
	return controller, true
}

// Delete ends the session
func (s *Sessions) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions, expired ones may still be counted until cleanup
func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}

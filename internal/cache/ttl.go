// Package cache holds short-lived list results grouped by toolset, so a write
// in one toolset can drop every list it may have made stale in one step.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store maps scope -> key -> entry. A scope is a toolset id; keys are the
// tool name plus its encoded arguments.
type Store struct {
	mu     sync.Mutex
	scopes map[string]map[string]entry
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{scopes: map[string]map[string]entry{}, now: time.Now}
}

func (s *Store) Get(scope, key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.scopes[scope]
	item, ok := items[key]
	if !ok {
		return nil, false
	}
	if s.now().After(item.expiresAt) {
		delete(items, key)
		if len(items) == 0 {
			delete(s.scopes, scope)
		}
		return nil, false
	}
	return item.value, true
}

// Set stores value until ttl elapses. Entries without a positive ttl are not
// kept.
func (s *Store) Set(scope, key string, value any, ttl time.Duration) {
	if s == nil || scope == "" || key == "" || ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.scopes[scope]
	if !ok {
		items = map[string]entry{}
		s.scopes[scope] = items
	}
	items[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
}

// Invalidate drops the whole scope and reports how many entries it held.
func (s *Store) Invalidate(scope string) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.scopes[scope])
	delete(s.scopes, scope)
	return removed
}
